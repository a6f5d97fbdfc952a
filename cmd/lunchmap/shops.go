package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/service"
)

func newShopsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shops",
		Short: "List all shops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shops, err := a.client.ListShops(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", service.MsgLoadShopsFailed, err)
			}
			printShops(cmd.OutOrStdout(), shops)
			return nil
		},
	}
}

func newShopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shop <id>",
		Short: "Show one shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, err := a.client.GetShop(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get shop %q: %w", args[0], err)
			}
			printShop(cmd.OutOrStdout(), shop)
			return nil
		},
	}
}

func newAddShopCmd(a *app) *cobra.Command {
	var (
		draft    service.ShopDraft
		lat, lng float64
	)
	cmd := &cobra.Command{
		Use:   "add-shop",
		Short: "Register a new shop at a coordinate",
		Long: `Registers a new shop. --lat and --lng stand in for the map click that
picks the location; only --name is required to be non-blank.

Example:
  lunchmap add-shop --name "Curry House" --lat 35.6895 --lng 139.6917`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := domain.Coordinate{Latitude: lat, Longitude: lng}
			if !at.InRange() {
				return fmt.Errorf("%w: coordinate %s is out of range", domain.ErrValidation, at)
			}

			reg := service.NewShopRegistration(a.client, a.logger)
			reg.Edit(func(d *service.ShopDraft) { *d = draft })
			shop, err := reg.Submit(cmd.Context(), at)
			if err != nil {
				if msg := reg.Message(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			printShop(cmd.OutOrStdout(), shop)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "Shop name (required)")
	cmd.Flags().StringVar(&draft.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&draft.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&draft.URL, "url", "", "Website")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude (required)")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude (required)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func printShops(w io.Writer, shops []domain.Shop) {
	if len(shops) == 0 {
		fmt.Fprintln(w, "no shops yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tADDRESS")
	for _, s := range shops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Location(), s.Address)
	}
	_ = tw.Flush()
}

func printShop(w io.Writer, s domain.Shop) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", s.ID)
	fmt.Fprintf(tw, "name:\t%s\n", s.Name)
	fmt.Fprintf(tw, "address:\t%s\n", s.Address)
	fmt.Fprintf(tw, "phone:\t%s\n", s.Phone)
	fmt.Fprintf(tw, "url:\t%s\n", s.URL)
	fmt.Fprintf(tw, "location:\t%s\n", s.Location())
	_ = tw.Flush()
}
