package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph FILE",
		Short: "Print waveforms in evaluation order with their dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.graph(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) graph(out io.Writer, path string) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	g, err := doc.Tree.Graph()
	if err != nil {
		return err
	}
	for _, name := range g.Order() {
		deps, err := g.Dependencies(name)
		if err != nil {
			return err
		}
		if len(deps) == 0 {
			fmt.Fprintln(out, name)
			continue
		}
		fmt.Fprintf(out, "%s <- %s\n", name, strings.Join(deps, ", "))
	}

	return nil
}
