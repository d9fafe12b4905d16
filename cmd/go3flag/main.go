package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func main() {

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	rootCmd := newRootCmd(fset)
	err := rootCmd.Execute()

	klog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd returns the go3flag command tree, with the given go flags (klog's) added as global flags.
func newRootCmd(fset *flag.FlagSet) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "go3flag",
		Short:         "Generates 3-graphs, flags and flag orbits for flag algebra problems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if fset != nil {
		rootCmd.PersistentFlags().AddGoFlagSet(fset)
	}

	rootCmd.AddCommand(newGraphsCmd())
	rootCmd.AddCommand(newFlagsCmd())
	rootCmd.AddCommand(newOrbitsCmd())
	rootCmd.AddCommand(newProblemCmd())
	rootCmd.AddCommand(newRunCmd())
	return rootCmd
}
