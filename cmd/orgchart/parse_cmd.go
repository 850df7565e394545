package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/modules/org/services"
)

type parseOptions struct {
	input  string
	report bool
	format string
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse org structure lines into chart JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, opts.input)
			if err != nil {
				return err
			}
			hopts, err := a.hierarchyOptions()
			if err != nil {
				return err
			}
			res, err := services.NewHierarchyService(hopts...).Parse(cmd.Context(), text)
			if err != nil {
				return classify(err)
			}
			return writeParseResult(cmd.OutOrStdout(), res, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "-", "Input file, - for stdin")
	cmd.Flags().BoolVar(&opts.report, "report", false, "Wrap the tree with parse diagnostics")
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json|lines")
	return cmd
}

type parseOutput struct {
	Tree   json.RawMessage  `json:"tree"`
	Report hierarchy.Report `json:"report"`
}

func writeParseResult(w io.Writer, res *hierarchy.Result, opts parseOptions) error {
	switch opts.format {
	case "lines":
		text := hierarchy.FormatLines(hierarchy.Flatten(res.Root))
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, text)
		return err
	case "json":
	default:
		return withCode(exitUsage, fmt.Errorf("unsupported --format: %s", opts.format))
	}

	tree, err := hierarchy.MarshalTree(res.Root)
	if err != nil {
		return withCode(exitValidation, fmt.Errorf("encode tree: %w", err))
	}
	if !opts.report {
		return writeJSONLine(w, json.RawMessage(tree))
	}
	return writeJSONLine(w, parseOutput{Tree: tree, Report: res.Report})
}
