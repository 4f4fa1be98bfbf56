package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/models"
	"storefront/internal/shop"
)

var (
	addressInput models.AddressInput
	checkoutAddr string
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Manage shipping addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			printAddresses(cmd.OutOrStdout(), store.State())
			return nil
		})
	},
}

var addressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			in := addressInput
			return store.UpdateAddresses(ctx, shop.AddressAdd, "", &in)
		})
	},
}

var addressUpdateCmd = &cobra.Command{
	Use:   "update <addressId>",
	Short: "Update an address; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			current, ok := store.State().Profile.Address(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", shop.ErrAddressNotFound, args[0])
			}
			in := mergeAddressFlags(cmd, models.InputFrom(current))
			return store.UpdateAddresses(ctx, shop.AddressUpdate, args[0], &in)
		})
	},
}

var addressDeleteCmd = &cobra.Command{
	Use:   "delete <addressId>",
	Short: "Delete a non-default address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return store.UpdateAddresses(ctx, shop.AddressDelete, args[0], nil)
		})
	},
}

var addressDefaultCmd = &cobra.Command{
	Use:   "default <addressId>",
	Short: "Make an address the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			return store.SetDefaultAddress(ctx, args[0])
		})
	},
}

// mergeAddressFlags overlays the flags the user actually set onto in.
func mergeAddressFlags(cmd *cobra.Command, in models.AddressInput) models.AddressInput {
	fields := map[string]*string{
		"full-name": &in.FullName,
		"street":    &in.Street,
		"city":      &in.City,
		"state":     &in.State,
		"zip":       &in.ZipCode,
		"phone":     &in.Phone,
	}
	for name, dst := range fields {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = v
		}
	}
	if cmd.Flags().Changed("default") {
		in.IsDefault, _ = cmd.Flags().GetBool("default")
	}
	return in
}

func addAddressFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&addressInput.FullName, "full-name", "", "recipient name")
	cmd.Flags().StringVar(&addressInput.Street, "street", "", "street address")
	cmd.Flags().StringVar(&addressInput.City, "city", "", "city")
	cmd.Flags().StringVar(&addressInput.State, "state", "", "state")
	cmd.Flags().StringVar(&addressInput.ZipCode, "zip", "", "postal code")
	cmd.Flags().StringVar(&addressInput.Phone, "phone", "", "phone number")
	cmd.Flags().BoolVar(&addressInput.IsDefault, "default", false, "make this the default address")
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Long: `Place an order for the current cart. The default address is used unless
--address is given. The order total is the cart total.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			st := store.State()
			addressID := checkoutAddr
			if addressID == "" {
				if def, ok := st.DefaultAddress(); ok {
					addressID = def.ID
				}
			}

			res, err := store.PlaceOrder(ctx, addressID, st.CartTotal())
			if err != nil {
				return err
			}
			if res == nil {
				return errors.New("checkout returned no order")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed for %s\n", res.OrderID, models.FormatPrice(st.CartTotal()))
			return nil
		})
	},
}

var orderCmd = &cobra.Command{
	Use:   "order <orderId>",
	Short: "Show an order (needs --token)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *shop.Store) error {
			order, err := store.FetchOrder(ctx, args[0])
			if err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), order)
			return nil
		})
	},
}

func init() {
	addAddressFlags(addressAddCmd)
	addAddressFlags(addressUpdateCmd)
	addressCmd.AddCommand(addressAddCmd, addressUpdateCmd, addressDeleteCmd, addressDefaultCmd)

	checkoutCmd.Flags().StringVar(&checkoutAddr, "address", "", "shipping address id (default: the default address)")
}
