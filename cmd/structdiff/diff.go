package main

import (
	"fmt"

	"github.com/qri-io/structdiff"
	"github.com/spf13/cobra"
)

type diffOptions struct {
	names       string
	label       string
	delimiter   string
	exclude     []string
	index       bool
	stopAtEqual bool
	parallel    int
	maxDepth    int
	output      string
	stats       bool
}

func newDiffCmd() *cobra.Command {
	o := &diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "List the leaf differences between two documents",
		Long: `diff decodes two documents and lists every leaf value that differs.
The decoder is picked from each file's extension: .json, .yaml, .yml, .toml,
.msgpack or .mp.

Paths start with the --label, if one is given. A document whose top level
has an empty key ({"": 1}) needs a --label, because the difference would
otherwise have no path at all.

Exit status is 0 when the documents are equal, 1 when they differ and 2 when
something went wrong.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.names, "names", "", "YAML or TOML file of display names")
	f.StringVar(&o.label, "label", "", "display name of the root document")
	f.StringVar(&o.delimiter, "delimiter", structdiff.DefaultDelimiter, "path segment delimiter")
	f.StringSliceVar(&o.exclude, "exclude", nil, "member names to skip, comma separated")
	f.BoolVar(&o.index, "index", false, "append [i] to list element paths")
	f.BoolVar(&o.stopAtEqual, "stop-at-equal", false, "stop walking a list at its first equal element pair")
	f.IntVar(&o.parallel, "parallel", 1, "nested comparisons to run at once")
	f.IntVar(&o.maxDepth, "max-depth", structdiff.DefaultMaxDepth, "maximum nesting depth, 0 for no limit")
	f.StringVarP(&o.output, "output", "o", "text", "output format (text|json|yaml|msgpack)")
	f.BoolVar(&o.stats, "stats", false, "print comparison statistics")
	return cmd
}

func (o *diffOptions) run(cmd *cobra.Command, leftPath, rightPath string) error {
	var enc structdiff.Encoding
	if o.output != "text" {
		var err error
		if enc, err = structdiff.ParseEncoding(o.output); err != nil {
			return err
		}
	}
	colorTTY, err := useColor(cmd)
	if err != nil {
		return err
	}

	left, err := decodeFile(leftPath)
	if err != nil {
		return err
	}
	right, err := decodeFile(rightPath)
	if err != nil {
		return err
	}

	opts, stats, err := o.options(cmd)
	if err != nil {
		return err
	}
	res, err := structdiff.Diff(cmd.Context(), left, right, opts...)
	if err != nil {
		return err
	}

	if err := o.write(cmd, res, enc, colorTTY); err != nil {
		return err
	}
	if o.stats {
		// encoded output stays machine readable, so stats go to stderr there
		w := cmd.OutOrStdout()
		if enc != "" {
			w = cmd.ErrOrStderr()
		}
		if colorTTY {
			fmt.Fprint(w, structdiff.FormatPrettyStatsColor(stats))
		} else {
			fmt.Fprint(w, structdiff.FormatPrettyStats(stats))
		}
	}

	if !res.Empty() {
		return errDifferencesFound
	}
	return nil
}

func (o *diffOptions) options(cmd *cobra.Command) ([]structdiff.Option, *structdiff.Stats, error) {
	stats := &structdiff.Stats{}
	opts := []structdiff.Option{
		structdiff.OptionDelimiter(o.delimiter),
		structdiff.OptionMaxDepth(o.maxDepth),
		structdiff.OptionParallel(o.parallel),
		structdiff.OptionLogger(newLogger(cmd)),
		structdiff.OptionSetStats(stats),
	}
	if o.label != "" {
		opts = append(opts, structdiff.OptionLabel(o.label))
	}
	if o.names != "" {
		names, err := structdiff.LoadNames(o.names)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, structdiff.OptionNames(names))
	}
	if len(o.exclude) > 0 {
		opts = append(opts, structdiff.OptionExcludeFields(o.exclude...))
	}
	if o.index {
		opts = append(opts, structdiff.OptionIndexElements())
	}
	if o.stopAtEqual {
		opts = append(opts, structdiff.OptionStopAtEqualElement())
	}
	return opts, stats, nil
}

func (o *diffOptions) write(cmd *cobra.Command, res *structdiff.Result, enc structdiff.Encoding, colorTTY bool) error {
	if enc == "" {
		return structdiff.FormatPretty(cmd.OutOrStdout(), res, colorTTY)
	}
	return structdiff.Encode(cmd.OutOrStdout(), res, enc)
}
