package main

import (
	"context"

	"github.com/spf13/cobra"

	"storefront/internal/models"
	"storefront/internal/shop"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage the wishlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			printWishlist(cmd.OutOrStdout(), store.State())
			return nil
		})
	},
}

func wishlistActionCmd(use, short string, action shop.WishlistAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <productId>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
				size := resolveSize(store.State(), args[0], action == shop.WishlistAdd)
				if err := store.UpdateWishlist(ctx, args[0], action, size); err != nil {
					return err
				}
				printWishlist(cmd.OutOrStdout(), store.State())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sizeFlag, "size", "", "size variant")
	return cmd
}

var wishlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the wishlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return store.ClearWishlist(ctx)
		})
	},
}

var wishlistMoveCmd = &cobra.Command{
	Use:   "move <productId>",
	Short: "Move a wishlist entry into the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return store.MoveToCart(ctx, args[0], models.SizeOf(sizeFlag))
		})
	},
}

func init() {
	wishlistMoveCmd.Flags().StringVar(&sizeFlag, "size", "", "size variant")
	wishlistCmd.AddCommand(
		wishlistActionCmd("add", "Add a product to the wishlist", shop.WishlistAdd),
		wishlistActionCmd("remove", "Remove a product from the wishlist", shop.WishlistRemove),
		wishlistClearCmd,
		wishlistMoveCmd,
	)
}
