package main

import (
	"fmt"
	"strconv"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/2x3systems/go3flag/lib3flag"
	"github.com/2x3systems/go3flag/problem"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// genFlags are the flags shared by the generating commands.
type genFlags struct {
	constraints string
	workers     int
	dedup       string
	countOnly   bool
	hash        bool
	degrees     bool
}

func (gf *genFlags) install(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&gf.constraints, "constraints", "c", "", `constraint expression, e.g. "span 4 < 3; forbid 4:(1,2,3)(1,2,4)(1,3,4)"`)
	cmd.Flags().IntVarP(&gf.workers, "workers", "w", 0, "number of goroutines used to check candidate extensions")
	cmd.Flags().StringVar(&gf.dedup, "dedup", string(go3flag.DedupMap), `isomorph rejection set ("map" or "lsm")`)
	cmd.Flags().BoolVar(&gf.countOnly, "count", false, "only print the number of results")
	cmd.Flags().BoolVar(&gf.hash, "hash", false, "print each result's canonic hash")
	cmd.Flags().BoolVar(&gf.degrees, "degrees", false, "print each result's degree sequence")
}

func (gf *genFlags) parse() (lib3flag.Constraints, lib3flag.GenOpts, error) {
	opts := lib3flag.GenOpts{
		Workers:  gf.workers,
		DedupSet: go3flag.DedupSet(gf.dedup),
	}
	C, err := lib3flag.ParseConstraints(gf.constraints)
	return C, opts, err
}

func (gf *genFlags) printFlags(cmd *cobra.Command, label string, flags []*lib3flag.Flag) {
	out := cmd.OutOrStdout()
	if !gf.countOnly {
		opts := go3flag.PrintOpts{
			Label:   label,
			Flag:    true,
			Hash:    gf.hash,
			Degrees: gf.degrees,
		}
		lib3flag.StreamFlags(flags).Print(out, opts).PullAll()
	}
	fmt.Fprintf(out, "%s: %s\n", label, humanize.Comma(int64(len(flags))))
}

func parseOrder(arg string) (int, error) {
	N, err := strconv.Atoi(arg)
	if err != nil || N < 0 || N > go3flag.MaxVtxID {
		return 0, errors.Wrapf(go3flag.ErrBadVtxCount, "%q", arg)
	}
	return N, nil
}

func newGraphsCmd() *cobra.Command {
	gf := &genFlags{}
	cmd := &cobra.Command{
		Use:   "graphs N",
		Short: "Generate all admissible 3-graphs on N vertices up to isomorphism",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			N, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			C, opts, err := gf.parse()
			if err != nil {
				return err
			}
			graphs, err := lib3flag.GenerateGraphs(N, C, opts)
			if err != nil {
				return err
			}
			gf.printFlags(cmd, fmt.Sprintf("graphs(%d)", N), graphs)
			return nil
		},
	}
	gf.install(cmd)
	return cmd
}

func newFlagsCmd() *cobra.Command {
	gf := &genFlags{}
	cmd := &cobra.Command{
		Use:   "flags N TYPE",
		Short: "Generate all admissible flags of the given type on N vertices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			N, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			tg, err := lib3flag.NewFlagFromString(args[1])
			if err != nil {
				return err
			}
			C, opts, err := gf.parse()
			if err != nil {
				return err
			}
			flags, err := lib3flag.GenerateFlags(N, tg, C, opts)
			if err != nil {
				return err
			}
			gf.printFlags(cmd, fmt.Sprintf("flags(%d,%v)", N, tg), flags)
			return nil
		},
	}
	gf.install(cmd)
	return cmd
}

func newOrbitsCmd() *cobra.Command {
	gf := &genFlags{}
	cmd := &cobra.Command{
		Use:   "orbits N TYPE",
		Short: "Generate the flags of the given type on N vertices and group them into orbits under relabelling the type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			N, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			tg, err := lib3flag.NewFlagFromString(args[1])
			if err != nil {
				return err
			}
			C, opts, err := gf.parse()
			if err != nil {
				return err
			}
			flags, err := lib3flag.GenerateFlags(N, tg, C, opts)
			if err != nil {
				return err
			}
			orbs, err := lib3flag.FlagOrbits(tg, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !gf.countOnly {
				for _, orb := range orbs {
					fmt.Fprintf(out, "%v", orb)
					for _, idx := range orb {
						fmt.Fprintf(out, " %v", flags[idx])
					}
					fmt.Fprintln(out)
				}
			}
			inv, anti := orbs.InvariantSplit()
			fmt.Fprintf(out, "%s flags, %s orbits (%d : %d)\n",
				humanize.Comma(int64(len(flags))), humanize.Comma(int64(len(orbs))), inv, anti)
			return nil
		},
	}
	gf.install(cmd)
	return cmd
}

func newProblemCmd() *cobra.Command {
	var (
		cfgPath string
		cfg     problem.Config
	)
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Set up the graphs, types, flags and flag orbits of a problem on graphs of order n",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fileCfg, err := problem.LoadConfig(cfgPath)
				if err != nil {
					return err
				}

				// Flags given on the command line take precedence
				for name, dst := range map[string]*int{"order": &fileCfg.N, "workers": &fileCfg.Workers} {
					if cmd.Flags().Changed(name) {
						*dst, _ = cmd.Flags().GetInt(name)
					}
				}
				if cmd.Flags().Changed("constraints") {
					fileCfg.Constraints = cfg.Constraints
				}
				if cmd.Flags().Changed("dedup") {
					fileCfg.Dedup = cfg.Dedup
				}
				cfg = fileCfg
			}

			p, err := problem.New(cfg)
			if err != nil {
				return err
			}
			p.WriteSummary(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "problem config file (.toml, .yaml)")
	cmd.Flags().IntVarP(&cfg.N, "order", "n", 0, "order of the problem's graphs")
	cmd.Flags().StringVarP(&cfg.Constraints, "constraints", "c", "", "constraint expression")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", 0, "number of goroutines used to check candidate extensions")
	cmd.Flags().StringVar(&cfg.Dedup, "dedup", "", `isomorph rejection set ("map" or "lsm")`)
	return cmd
}
