package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

type sampleFlags struct {
	from, to   float64
	points     int
	derivative bool
}

func newSampleCmd(a *app) *cobra.Command {
	var f sampleFlags
	cmd := &cobra.Command{
		Use:   "sample FILE NAME",
		Short: "Print a waveform as time/value pairs",
		Long: `Print a waveform as tab-separated time/value pairs.

Without --points the waveform's natural grid is used; with --points the
range [--from, --to] is sampled evenly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sample(cmd.OutOrStdout(), args[0], args[1], f)
		},
	}
	cmd.Flags().Float64Var(&f.from, "from", 0, "first sample time (with --points)")
	cmd.Flags().Float64Var(&f.to, "to", 1, "last sample time (with --points)")
	cmd.Flags().IntVar(&f.points, "points", 0, "number of evenly spaced samples; 0 uses the natural grid")
	cmd.Flags().BoolVar(&f.derivative, "derivative", false, "print the time derivative instead of the value")

	return cmd
}

func (a *app) sample(out io.Writer, path, name string, f sampleFlags) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}

	var times []float64
	switch {
	case f.points == 1:
		times = []float64{f.from}
	case f.points > 1:
		times = make([]float64, f.points)
		step := (f.to - f.from) / float64(f.points-1)
		for i := range times {
			times[i] = f.from + float64(i)*step
		}
	default:
		if times, err = doc.Tree.Times(name); err != nil {
			return err
		}
	}

	var values []float64
	if f.derivative {
		values, err = doc.Tree.Derivatives(name, times)
	} else {
		values, err = doc.Tree.Values(name, times)
	}
	if err != nil {
		return err
	}
	for i := range times {
		fmt.Fprintf(out, "%s\t%s\n", formatFloat(times[i]), formatFloat(values[i]))
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
