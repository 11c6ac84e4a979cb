package client

import (
	"github.com/spf13/cobra"
)

// NewTrackCommand constructs the `track` command group and subcommands.
func NewTrackCommand(baseURL BaseURLFunc) *cobra.Command {
	trackCmd := &cobra.Command{Use: "track", Short: "Record events"}
	trackCmd.AddCommand(
		newTrackVisitCommand(baseURL),
		newTrackPurchaseCommand(baseURL),
	)
	return trackCmd
}

type trackBody struct {
	Kind        string `json:"kind"`
	SubjectID   string `json:"subject_id,omitempty"`
	Page        string `json:"page,omitempty"`
	ProductID   string `json:"product_id,omitempty"`
	PromotionID string `json:"promotion_id,omitempty"`
	Quantity    *int64 `json:"quantity,omitempty"`
}

func newTrackVisitCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit",
		Short: "Record a page visit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			page, _ := cmd.Flags().GetString("page")
			var out map[string]any
			body := trackBody{Kind: "visit", SubjectID: subject, Page: page}
			if err := postJSON(baseURL, "/v1/events", body, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().String("subject", "", "Subject (user) identifier")
	cmd.Flags().String("page", "", "Visited page URL or path")
	return cmd
}

func newTrackPurchaseCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Record a product purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			product, _ := cmd.Flags().GetString("product")
			promotion, _ := cmd.Flags().GetString("promotion")
			quantity, _ := cmd.Flags().GetInt64("quantity")
			var out map[string]any
			body := trackBody{
				Kind:        "purchase",
				SubjectID:   subject,
				ProductID:   product,
				PromotionID: promotion,
				Quantity:    &quantity,
			}
			if err := postJSON(baseURL, "/v1/events", body, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().String("subject", "", "Subject (user) identifier")
	cmd.Flags().String("product", "", "Product identifier")
	cmd.Flags().String("promotion", "", "Promotion identifier")
	cmd.Flags().Int64("quantity", 1, "Quantity purchased")
	return cmd
}
