package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCommand constructs the `stats` command.
func NewStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show server statistics with a trailing-window count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hours, _ := cmd.Flags().GetFloat64("hours")
			path := "/v1/stats"
			if hours > 0 {
				path = fmt.Sprintf("%s?hours=%g", path, hours)
			}
			var out map[string]any
			if err := getJSON(baseURL, path, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64("hours", 0, "Window size in hours (server default when omitted)")
	return cmd
}
