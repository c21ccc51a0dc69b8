package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// errHasErrors makes check exit non-zero when the document has error annotations.
var errHasErrors = errors.New("document has errors")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Load a document and print its annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) check(out io.Writer, path string) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	for _, n := range doc.Annotations.Items() {
		fmt.Fprintf(out, "%s:%s\n", path, n)
	}
	fmt.Fprintf(out, "%s: %d waveforms, %d errors, %d warnings\n",
		path, len(doc.Tree.Names()), len(doc.Annotations.Errors()), len(doc.Annotations.Warnings()))
	if doc.Annotations.HasErrors() {
		return errHasErrors
	}

	return nil
}
