// Package main provides the propbind CLI.
//
// propbind inspects the accessor tables that the binding engine derives from
// Go types and shows how property files flatten into bindable keys:
//   - inspect: loads packages from source and lists every property
//   - flatten: loads a YAML, TOML or dotenv file into dotted keys
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type app struct {
	fs      afero.Fs
	out     io.Writer
	errOut  io.Writer
	verbose bool
	dump    bool
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

// printDump writes a spew dump of v when --dump is set.
func (a *app) printDump(v any) {
	if !a.dump {
		return
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cfg.Fdump(a.out, v)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "propbind",
		Short:         "Inspect property accessors and binding sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug records to stderr")
	root.PersistentFlags().BoolVar(&a.dump, "dump", false, "dump the loaded structures")

	root.AddCommand(newInspectCmd(a), newFlattenCmd(a))

	return root
}

func main() {
	a := &app{
		fs:     afero.NewOsFs(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "propbind:", err)
		os.Exit(1)
	}
}
