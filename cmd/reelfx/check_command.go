package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelfx/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check directories, settings and the session store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cmd.Context(), cfg)

			lines := renderSectionHeader("Preflight", colorize)
			lines = append(lines, checkLines(results, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			for _, r := range results {
				if !r.Passed {
					return errors.New("preflight checks failed")
				}
			}
			return nil
		},
	}
}
