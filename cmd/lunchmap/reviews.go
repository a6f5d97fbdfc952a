package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/service"
)

func newReviewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <shop-id>",
		Short: "List the reviews of a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := a.client.ListReviews(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", service.MsgLoadReviewsFailed, err)
			}
			printReviews(cmd.OutOrStdout(), reviews)
			return nil
		},
	}
}

func newAddReviewCmd(a *app) *cobra.Command {
	var (
		in                       domain.ReviewInput
		price, taste, atmosphere int
	)
	cmd := &cobra.Command{
		Use:   "add-review <shop-id>",
		Short: "Post a review for a shop",
		Long: `Posts a review. Ratings are 1 to 5 and default to 3.

Example:
  lunchmap add-review 5f0c... --reviewer Hanako --visits 2 --taste 5 --comment "Rich broth"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			shop, err := a.client.GetShop(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get shop %q: %w", args[0], err)
			}

			wf := service.NewReviewWorkflow(a.client, a.logger, nil)
			form := wf.Form()
			form.SetReviewer(in.Reviewer)
			form.SetVisitCount(in.VisitCount)
			form.SetComment(in.Comment)
			for _, r := range []struct {
				kind  service.RatingKind
				value int
			}{
				{service.PriceRating, price},
				{service.TasteRating, taste},
				{service.AtmosphereRating, atmosphere},
			} {
				if err := form.SetRating(r.kind, r.value); err != nil {
					return err
				}
			}
			// The panel state is only needed for the refresh after posting.
			_ = wf.Show(ctx, &shop)

			review, err := wf.Submit(ctx)
			if err != nil {
				if msg := form.Message(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted review %s for %s (overall %d%%)\n", review.ID, shop.Name, review.OverallPercent())
			printReviews(cmd.OutOrStdout(), wf.View().Reviews)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Reviewer, "reviewer", "", "Reviewer name (required)")
	cmd.Flags().IntVar(&in.VisitCount, "visits", 1, "Number of visits")
	cmd.Flags().IntVar(&price, "price", domain.DefaultRating, "Price rating 1-5")
	cmd.Flags().IntVar(&taste, "taste", domain.DefaultRating, "Taste rating 1-5")
	cmd.Flags().IntVar(&atmosphere, "atmosphere", domain.DefaultRating, "Atmosphere rating 1-5")
	cmd.Flags().StringVar(&in.Comment, "comment", "", "Free-text comment")
	return cmd
}

func printReviews(w io.Writer, reviews []domain.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "no reviews yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REVIEWER\tVISITS\tPRICE\tTASTE\tATMOSPHERE\tOVERALL\tDATE\tCOMMENT")
	for _, r := range reviews {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d%%\t%s\t%s\n",
			r.Reviewer, r.VisitCount, r.PriceRating, r.TasteRating, r.AtmosphereRating,
			r.OverallPercent(), r.CreatedAt.Format("2006-01-02"), r.Comment)
	}
	_ = tw.Flush()
}
