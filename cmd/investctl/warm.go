package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/InvestBoard-Backend/internal/app"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
)

func warmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Force-refresh the market snapshot and all IPO lists",
		Long: `Run the same job as the refresh scheduler once: the market snapshot and
the current, upcoming and past IPO lists are fetched concurrently and written
to the durable cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if err := service.Warm(cmd.Context(), a.MarketData); err != nil {
					return fmt.Errorf("warm failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Warmed market snapshot and IPO lists")
				return nil
			})
		},
	}
}
