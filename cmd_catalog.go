package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"storefront/internal/api"
	"storefront/internal/shop"
)

var (
	outputFormat string

	searchQuery string
	categories  []string
	minRating   int
	sortOrder   string
	minPrice    float64
	maxPrice    float64
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the loaded session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return printState(os.Stdout, store.State(), outputFormat)
		})
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	Long: `List catalog products. Search, category, rating and sort are applied by
the server; the price range is applied locally on the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validSort(sortOrder); err != nil {
			return err
		}
		query := api.ProductQuery{
			Search:     searchQuery,
			Categories: categories,
			MinRating:  minRating,
			Sort:       api.SortOrder(sortOrder),
		}
		filter := shop.ProductFilter{
			MinPrice:  decimal.NewFromFloat(minPrice),
			MaxPrice:  decimal.NewFromFloat(maxPrice),
			MinRating: float64(minRating),
		}
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			store.SetSearchTerm(searchQuery)
			if err := store.FetchProducts(ctx, query); err != nil {
				return err
			}
			printProducts(os.Stdout, shop.FilterProducts(store.State().Products, filter))
			return nil
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			p, err := store.FetchProduct(ctx, args[0])
			if err != nil {
				return err
			}
			printProduct(os.Stdout, p, store.State())
			return nil
		})
	},
}

func init() {
	stateCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or yaml")

	productsCmd.Flags().StringVar(&searchQuery, "q", "", "search text")
	productsCmd.Flags().StringSliceVar(&categories, "category", nil, "categories (repeat or comma separate)")
	productsCmd.Flags().IntVar(&minRating, "rating", 0, "minimum rating")
	productsCmd.Flags().StringVar(&sortOrder, "sort", "", "priceLowToHigh or priceHighToLow")
	productsCmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	productsCmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price (0 for none)")
}

func validSort(s string) error {
	switch api.SortOrder(s) {
	case api.SortNone, api.SortPriceLowToHigh, api.SortPriceHighToLow:
		return nil
	}
	return fmt.Errorf("unknown sort order %q", s)
}
