package main

import (
	"context"

	"github.com/spf13/cobra"

	"storefront/internal/models"
	"storefront/internal/shop"
)

var sizeFlag string

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			printCart(cmd.OutOrStdout(), store.State())
			return nil
		})
	},
}

// cartActionCmd builds one of add|remove|inc|dec.
func cartActionCmd(use, short string, action shop.CartAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <productId>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
				size := resolveSize(store.State(), args[0], action == shop.CartAdd)
				if err := store.UpdateCart(ctx, args[0], action, size); err != nil {
					return err
				}
				printCart(cmd.OutOrStdout(), store.State())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sizeFlag, "size", "", "size variant (omit for products without sizes)")
	return cmd
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return store.ClearCart(ctx)
		})
	},
}

var cartSaveCmd = &cobra.Command{
	Use:   "save <productId>",
	Short: "Move a cart line to the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return store.MoveToWishlist(ctx, args[0], models.SizeOf(sizeFlag))
		})
	},
}

// resolveSize turns --size into a variant. For adds without --size the
// product's first size is preselected, as on the product card.
func resolveSize(st shop.State, productID string, preselect bool) models.Size {
	if size := models.SizeOf(sizeFlag); !size.IsNone() || !preselect {
		return size
	}
	for _, p := range st.Products {
		if p.ID == productID {
			return p.DefaultSize()
		}
	}
	return models.NoSize()
}

func init() {
	cartSaveCmd.Flags().StringVar(&sizeFlag, "size", "", "size variant")
	cartCmd.AddCommand(
		cartActionCmd("add", "Add one unit to the cart", shop.CartAdd),
		cartActionCmd("remove", "Remove a whole cart line", shop.CartRemove),
		cartActionCmd("inc", "Increase a line's quantity", shop.CartIncrement),
		cartActionCmd("dec", "Decrease a line's quantity", shop.CartDecrement),
		cartClearCmd,
		cartSaveCmd,
	)
}
