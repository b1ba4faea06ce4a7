package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/lattice-paths/internal/engine"
	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/path"
	"github.com/kingrea/lattice-paths/internal/render"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// optimizeOutput is the machine-readable result for one catalog.
type optimizeOutput struct {
	Catalog  string            `json:"catalog" yaml:"catalog"`
	Path     path.LearningPath `json:"path" yaml:"path"`
	Findings []finding.Finding `json:"findings" yaml:"findings"`
}

func newOptimizeCmd(c *cli) *cobra.Command {
	var (
		format   string
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "optimize CATALOG...",
		Short: "Build a learning path for each catalog",
		Long: `Build a learning path for each catalog and print it.

Several catalogs are optimized in parallel; results are printed in argument
order. Structural problems in a catalog (cycles, duplicate ids, difficulty
inversions) are reported next to the path and do not fail the command.

Examples:
  pathseq optimize algebra.yaml
  pathseq optimize algebra.yaml geometry.yaml --format json
  pathseq optimize algebra.yaml --set load_ceiling=0.6 --profile learner.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			reqs, err := c.requests(args)
			if err != nil {
				return err
			}
			results, err := c.engine(parallel).OptimizeBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			outputs := make([]optimizeOutput, 0, len(results))
			for _, res := range results {
				if res.Err != nil {
					return fmt.Errorf("%s: %w", res.RequestID, res.Err)
				}
				findings := res.Findings
				if findings == nil {
					findings = finding.List{}
				}
				outputs = append(outputs, optimizeOutput{
					Catalog:  res.RequestID,
					Path:     res.Path,
					Findings: findings,
				})
			}
			return writeOutputs(c.out, format, outputs)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, yaml)")
	cmd.Flags().IntVar(&parallel, "parallel", engine.DefaultParallelism, "catalogs optimized at once")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeOutputs(w io.Writer, format string, outputs []optimizeOutput) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(outputs) == 1 {
			return enc.Encode(outputs[0])
		}
		return enc.Encode(outputs)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, out := range outputs {
			if err := enc.Encode(out); err != nil {
				return err
			}
		}
		return enc.Close()
	default:
		for i, out := range outputs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, render.Report(out.Path, out.Findings))
		}
		return nil
	}
}
