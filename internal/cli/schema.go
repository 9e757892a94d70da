package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/pkgsort/internal/manifest"
)

type schemaOptions struct {
	format string
}

// fieldDoc is the schema command's serialization of a field descriptor.
type fieldDoc struct {
	Name      string `json:"name" yaml:"name"`
	Priority  int    `json:"priority" yaml:"priority"`
	Transform string `json:"transform" yaml:"transform"`
}

func newSchemaCommand() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the recognized field table",
		Long: `Print the full table of recognized package.json fields, in canonical
output order, together with the value transform applied to each field.

This is the authoritative reference for how pkgsort orders a manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table, json, yaml)")

	return cmd
}

func runSchema(cmd *cobra.Command, opts *schemaOptions) error {
	fields := manifest.Fields()

	docs := make([]fieldDoc, len(fields))
	for i, fd := range fields {
		docs[i] = fieldDoc{
			Name:      fd.Name,
			Priority:  fd.Priority,
			Transform: fd.Transform.String(),
		}
	}

	out := cmd.OutOrStdout()

	switch opts.format {
	case "table":
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PRIORITY\tFIELD\tTRANSFORM")

		for _, d := range docs {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", d.Priority, d.Name, d.Transform)
		}

		return tw.Flush()
	case "json":
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("marshaling schema: %w", err)}
		}

		_, err = fmt.Fprintln(out, string(data))

		return err
	case "yaml":
		data, err := yaml.Marshal(docs)
		if err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("marshaling schema: %w", err)}
		}

		_, err = out.Write(data)

		return err
	default:
		return &ExitError{Code: 2, Err: fmt.Errorf("unknown format %q: must be one of table, json, yaml", opts.format)}
	}
}
