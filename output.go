package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"storefront/internal/models"
	"storefront/internal/shop"
)

type lineView struct {
	ProductID string `yaml:"productId"`
	Name      string `yaml:"name"`
	Size      string `yaml:"size,omitempty"`
	Quantity  int    `yaml:"quantity,omitempty"`
	Price     string `yaml:"price"`
	Subtotal  string `yaml:"subtotal,omitempty"`
}

type addressView struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Line      string `yaml:"address"`
	Phone     string `yaml:"phone"`
	IsDefault bool   `yaml:"default"`
}

type orderView struct {
	ID        string `yaml:"id"`
	Status    string `yaml:"status"`
	Total     string `yaml:"total"`
	Items     int    `yaml:"items"`
	CreatedAt string `yaml:"createdAt,omitempty"`
}

type stateView struct {
	Products   int           `yaml:"products"`
	SearchTerm string        `yaml:"searchTerm,omitempty"`
	Cart       []lineView    `yaml:"cart"`
	CartItems  int           `yaml:"cartItems"`
	CartTotal  string        `yaml:"cartTotal"`
	Wishlist   []lineView    `yaml:"wishlist"`
	User       string        `yaml:"user,omitempty"`
	Addresses  []addressView `yaml:"addresses"`
	Orders     []orderView   `yaml:"orders"`
}

func sizeLabel(s models.Size) string {
	v, _ := s.Value()
	return v
}

func formatAddress(a models.Address) string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.ZipCode)
}

func newStateView(st shop.State) stateView {
	v := stateView{
		Products:   len(st.Products),
		SearchTerm: st.SearchTerm,
		Cart:       make([]lineView, 0, len(st.Cart)),
		CartItems:  st.CartItemCount(),
		CartTotal:  models.FormatPrice(st.CartTotal()),
		Wishlist:   make([]lineView, 0, len(st.Wishlist)),
		Addresses:  []addressView{},
		Orders:     make([]orderView, 0, len(st.Orders)),
	}
	for _, l := range st.Cart {
		v.Cart = append(v.Cart, lineView{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Size:      sizeLabel(l.Size),
			Quantity:  l.Quantity,
			Price:     models.FormatPrice(l.Product.Price),
			Subtotal:  models.FormatPrice(l.Subtotal()),
		})
	}
	for _, e := range st.Wishlist {
		v.Wishlist = append(v.Wishlist, lineView{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Size:      sizeLabel(e.Size),
			Price:     models.FormatPrice(e.Product.Price),
		})
	}
	if st.Profile != nil {
		v.User = st.Profile.Name
		for _, a := range st.Profile.Addresses {
			v.Addresses = append(v.Addresses, addressView{
				ID:        a.ID,
				Name:      a.FullName,
				Line:      formatAddress(a),
				Phone:     a.Phone,
				IsDefault: a.IsDefault,
			})
		}
	}
	for _, o := range st.Orders {
		label, _ := shop.StatusDisplay(o.Status)
		ov := orderView{
			ID:     o.ID,
			Status: label,
			Total:  models.FormatPrice(o.TotalAmount),
			Items:  len(o.Items),
		}
		if !o.CreatedAt.IsZero() {
			ov.CreatedAt = o.CreatedAt.Format("2006-01-02 15:04")
		}
		v.Orders = append(v.Orders, ov)
	}
	return v
}

func printState(w io.Writer, st shop.State, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newStateView(st)); err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		return enc.Close()
	case "", "text":
		v := newStateView(st)
		fmt.Fprintf(w, "Products loaded: %d\n", v.Products)
		if v.User != "" {
			fmt.Fprintf(w, "Signed in as:    %s\n", v.User)
		}
		fmt.Fprintln(w)
		printCart(w, st)
		fmt.Fprintln(w)
		printWishlist(w, st)
		fmt.Fprintln(w)
		printAddresses(w, st)
		fmt.Fprintln(w)
		printOrders(w, v.Orders)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printProducts(w io.Writer, products []models.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tRATING\tSIZES\tCATEGORY")
	for _, p := range products {
		sizes := make([]string, 0)
		for _, s := range p.SizeOptions() {
			sizes = append(sizes, s.String())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%s\n",
			p.ID, p.Name, models.FormatPrice(p.Price), p.Rating,
			strings.Join(sizes, ","), strings.Join(p.Category, ","))
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, p models.Product, st shop.State) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "Price:    %s\n", models.FormatPrice(p.Price))
	fmt.Fprintf(w, "Rating:   %.1f\n", p.Rating)
	if len(p.Category) > 0 {
		fmt.Fprintf(w, "Category: %s\n", strings.Join(p.Category, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}

	options := p.SizeOptions()
	if len(options) == 0 {
		options = []models.Size{models.NoSize()}
	}
	for _, size := range options {
		var flags []string
		if line, ok := st.FindCartLine(p.ID, size); ok {
			flags = append(flags, fmt.Sprintf("in cart x%d", line.Quantity))
		}
		if st.InWishlist(p.ID, size) {
			flags = append(flags, "in wishlist")
		}
		if len(flags) > 0 {
			fmt.Fprintf(w, "Size %s: %s\n", size, strings.Join(flags, ", "))
		}
	}
}

func printCart(w io.Writer, st shop.State) {
	if len(st.Cart) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tSIZE\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range st.Cart {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			l.Product.ID, l.Product.Name, l.Size, l.Quantity,
			models.FormatPrice(l.Product.Price), models.FormatPrice(l.Subtotal()))
	}
	fmt.Fprintf(tw, "\t\t\t%d\t\t%s\n", st.CartItemCount(), models.FormatPrice(st.CartTotal()))
	_ = tw.Flush()
}

func printWishlist(w io.Writer, st shop.State) {
	if len(st.Wishlist) == 0 {
		fmt.Fprintln(w, "Wishlist is empty.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tSIZE\tPRICE")
	for _, e := range st.Wishlist {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Product.ID, e.Product.Name, e.Size, models.FormatPrice(e.Product.Price))
	}
	_ = tw.Flush()
}

func printAddresses(w io.Writer, st shop.State) {
	if st.Profile == nil || len(st.Profile.Addresses) == 0 {
		fmt.Fprintln(w, "No saved addresses.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tPHONE\tDEFAULT")
	for _, a := range st.Profile.Addresses {
		def := ""
		if a.IsDefault {
			def = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.FullName, formatAddress(a), a.Phone, def)
	}
	_ = tw.Flush()
}

func printOrders(w io.Writer, orders []orderView) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tSTATUS\tITEMS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", o.ID, o.Status, o.Items, o.Total, o.CreatedAt)
	}
	_ = tw.Flush()
}

func printOrder(w io.Writer, o models.Order) {
	label, _ := shop.StatusDisplay(o.Status)
	fmt.Fprintf(w, "Order %s (%s)\n", o.ID, label)
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Placed:  %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Ship to: %s, %s\n\n", o.ShippingAddress.FullName, formatAddress(o.ShippingAddress))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tSIZE\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.Name, it.Size, it.Quantity,
			models.FormatPrice(it.Price), models.FormatPrice(it.Subtotal()))
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", models.FormatPrice(o.TotalAmount))
	_ = tw.Flush()
}
