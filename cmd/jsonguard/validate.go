package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonguard"
)

type fileResult struct {
	File   string           `json:"file"`
	OK     bool             `json:"ok"`
	Error  string           `json:"error,omitempty"`
	Issues jsonguard.Issues `json:"issues,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var schemaPath, output string
	cmd := &cobra.Command{
		Use:   "validate --schema FILE DATA...",
		Short: "Validate JSON documents (\"-\" reads stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("--output: %q is not text or json", output)
			}
			c, err := a.compiler()
			if err != nil {
				return err
			}
			v, err := c.CompileFile(schemaPath)
			if err != nil {
				return err
			}
			a.log.Debug().Str("schema", schemaPath).Msg("schema compiled")

			results := make([]fileResult, 0, len(args))
			failed := 0
			for _, path := range args {
				r := a.validateFile(cmd, v, path)
				if !r.OK {
					failed++
				}
				results = append(results, r)
			}
			if err := writeResults(cmd.OutOrStdout(), output, results); err != nil {
				return err
			}
			a.log.Info().Int("files", len(args)).Int("rejected", failed).Msg("validation finished")
			if failed > 0 {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (JSON, or YAML by extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) validateFile(cmd *cobra.Command, v *jsonguard.Validator, path string) fileResult {
	b, err := readInput(cmd, path)
	if err != nil {
		return fileResult{File: path, Error: err.Error()}
	}
	data, warnings, err := jsonguard.DecodeJSON(b, a.cfg.DecodeOpt())
	for _, w := range warnings {
		a.log.Warn().Str("file", path).Str("path", w.Path).Str("code", w.Code).Msg(w.Message)
	}
	if err == nil {
		err = v.Check(data)
	}
	if err != nil {
		iss, _ := jsonguard.AsIssues(err)
		return fileResult{File: path, Error: err.Error(), Issues: iss}
	}
	return fileResult{File: path, OK: true}
}

func writeResults(w io.Writer, format string, results []fileResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if r.OK {
			fmt.Fprintf(w, "%s: ok\n", r.File)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", r.File, r.Error)
		for _, it := range r.Issues {
			fmt.Fprintf(w, "  %s %s: %s\n", it.Path, it.Code, it.Message)
		}
	}
	return nil
}
