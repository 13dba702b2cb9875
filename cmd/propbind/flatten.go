package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"propbind/binding"
)

func newFlattenCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "flatten <file>",
		Short: "Print the flat property set of a YAML, TOML or dotenv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := binding.LoadFile(a.fs, args[0])
			if err != nil {
				return err
			}

			a.logger().Debug("properties loaded", "path", args[0], "count", len(props))

			has := props.Has(prefix)
			if prefix != "" {
				props = props.Extract(prefix)
			}

			for _, key := range props.Keys() {
				fmt.Fprintf(a.out, "%s=%v\n", key, props[key])
			}
			fmt.Fprintf(a.out, "digest: %016x\n", props.Digest())
			if prefix != "" {
				fmt.Fprintf(a.out, "has %q: %t\n", prefix, has)
			}

			a.printDump(props)

			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only keys under this prefix")

	return cmd
}
