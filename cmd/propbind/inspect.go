package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"propbind/internal/analyze"
	"propbind/internal/common"
	"propbind/introspect"
)

func newInspectCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "inspect <packages...>",
		Short: "List the properties of every exported type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := analyze.NewAnalyzer(a.logger()).LoadPackages(args...)
			if err != nil {
				return err
			}

			for _, info := range graph.Sorted() {
				if common.IsEmpty(info.Properties) && !all {
					continue
				}

				fmt.Fprintf(a.out, "%s.%s (%s)\n", common.PkgAlias(info.ID.PkgPath), info.ID.Name, info.Kind)
				for _, p := range info.Properties {
					fmt.Fprintf(a.out, "  %s\n", describeProperty(p))
				}
			}

			a.printDump(graph.Sorted())

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also list types without properties")

	return cmd
}

// describeProperty renders one line: name, access, getter and setters.
func describeProperty(p analyze.PropertyInfo) string {
	var b strings.Builder

	access := ""
	if p.Getter != nil {
		access += "r"
	}
	if !common.IsEmpty(p.Setters) {
		access += "w"
	}
	fmt.Fprintf(&b, "%-20s %-2s", p.Name, access)

	if p.Getter != nil {
		fmt.Fprintf(&b, " %s() %s", p.Getter.Method, p.Getter.Type)
	}

	for _, s := range p.Setters {
		fmt.Fprintf(&b, " %s(%s)", s.Method, s.Type)
		if s.Role == introspect.RoleBuilderSetter {
			b.WriteString(" builder")
		}
		if s.Promoted {
			b.WriteString(" promoted")
		}
	}

	if p.Overloaded() {
		b.WriteString(" [overloaded]")
	}

	return b.String()
}
