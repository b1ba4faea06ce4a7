package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/lattice-paths/internal/tui"
)

func newBrowseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "browse CATALOG",
		Short: "Explore a catalog's learning path in an interactive terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := c.requests(args)
			if err != nil {
				return err
			}
			req := reqs[0]
			p, findings, err := c.engine(1).Optimize(req.Objectives, req.Profile, req.Config)
			if err != nil {
				return fmt.Errorf("%s: %w", req.ID, err)
			}
			return tui.Run(p, findings)
		},
	}
}
