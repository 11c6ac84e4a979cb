package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the Tally client.
// It registers the track and stats command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Tally client commands",
	}
	root.AddCommand(NewTrackCommand(baseURL))
	root.AddCommand(NewStatsCommand(baseURL))
	return root
}
