package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/spf13/cobra"

	_ "github.com/2x3systems/go3flag/py3flag"
	_ "github.com/go-python/gpython/stdlib"
)

const replStartup = `
import _py3flag
from _py3flag import Flag, generate_graphs, generate_flags, flag_orbits, problem, stream
print("_py3flag", _py3flag.LIB_VERSION)
`

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [SCRIPT]",
		Short: "Run a gpython script with the _py3flag module available (or start a REPL)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return go_gpython(cmd, pathname)
		},
	}
}

func go_gpython(cmd *cobra.Command, pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var (
		err error
	)
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)

		_, err = py.RunSrc(ctx, replStartup, "<startup>", replCtx.Module)
		if err == nil {
			cli.RunREPL(replCtx)
		}

	} else {
		out := cmd.OutOrStdout()
		startTime := time.Now()
		fmt.Fprintf(out, "<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)

		if err == nil {
			elapsed := time.Since(startTime)
			fmt.Fprintf(out, "<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
		}

	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}
