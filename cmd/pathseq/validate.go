package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(c *cli) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate CATALOG...",
		Short: "Report structural findings without printing paths",
		Long: `Run the engine over each catalog and list its structural findings:
prerequisite cycles, duplicate ids, self-references, difficulty inversions and
invalid objective fields.

With --strict the command fails when any catalog has findings, which makes it
usable as a pre-publish check.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := c.requests(args)
			if err != nil {
				return err
			}
			results, err := c.engine(1).OptimizeBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			total := 0
			for _, res := range results {
				if res.Err != nil {
					return fmt.Errorf("%s: %w", res.RequestID, res.Err)
				}
				total += len(res.Findings)
				if len(res.Findings) == 0 {
					fmt.Fprintf(c.out, "%s: ok (%d objectives)\n", res.RequestID, len(res.Path.Objectives))
					continue
				}
				fmt.Fprintf(c.out, "%s: %d finding(s)\n", res.RequestID, len(res.Findings))
				for _, f := range res.Findings {
					fmt.Fprintf(c.out, "  %s\n", f)
				}
			}
			if strict && total > 0 {
				return fmt.Errorf("%d structural finding(s)", total)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any finding is reported")
	return cmd
}
