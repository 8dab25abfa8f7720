package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/InvestBoard-Backend/internal/app"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
	"github.com/ndewijer/InvestBoard-Backend/internal/validation"
)

func fetchCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "fetch <stock|mutual-fund|ipo|ipo-list|snapshot> [identifier]",
		Short: "Fetch one entity through the cache pipeline and print it",
		Long: `Fetch one entity the same way the HTTP API does: durable cache, then
memory cache, then the completion model. Fresh results are written to the
durable cache.

Examples:
  investctl fetch stock TCS
  investctl fetch mutual-fund 120503 --refresh
  investctl fetch ipo-list upcoming
  investctl fetch snapshot`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				result, err := fetchEntity(cmd, a.MarketData, args, refresh)
				if err != nil {
					return err
				}

				var out bytes.Buffer
				if err := json.Indent(&out, result.Data, "", "  "); err != nil {
					return fmt.Errorf("failed to format payload: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", result.Source)
				fmt.Fprintln(cmd.OutOrStdout(), out.String())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "bypass both cache tiers")

	return cmd
}

func fetchEntity(cmd *cobra.Command, svc *service.MarketDataService, args []string, refresh bool) (service.Result, error) {
	ctx := cmd.Context()
	kind := args[0]

	if kind == "snapshot" {
		return svc.GetMarketSnapshot(ctx, refresh)
	}
	if len(args) < 2 {
		return service.Result{}, fmt.Errorf("%s requires an identifier", kind)
	}

	switch kind {
	case "stock":
		symbol, err := validation.ParseStockSymbol(args[1])
		if err != nil {
			return service.Result{}, err
		}
		return svc.GetStock(ctx, symbol, refresh)
	case "mutual-fund":
		code, err := validation.ParseFundCode(args[1])
		if err != nil {
			return service.Result{}, err
		}
		return svc.GetMutualFund(ctx, code, refresh)
	case "ipo":
		id, err := validation.ParseIPOID(args[1])
		if err != nil {
			return service.Result{}, err
		}
		return svc.GetIPO(ctx, id, refresh)
	case "ipo-list":
		category, err := validation.ParseIPOCategory(args[1])
		if err != nil {
			return service.Result{}, err
		}
		return svc.GetIPOList(ctx, category, refresh)
	default:
		return service.Result{}, fmt.Errorf("unknown entity type %q", kind)
	}
}
