package shop

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"storefront/internal/api"
	"storefront/internal/models"
)

// result is the outcome of one fetch in a fan-out.
type result[T any] struct {
	seq   uint64
	value T
	err   error
}

func fetchInto[T any](ctx context.Context, g *errgroup.Group, r *result[T], fetch func(context.Context) (T, error)) {
	g.Go(func() error {
		r.value, r.err = fetch(ctx)
		return nil
	})
}

// LoadInitialState fetches cart, wishlist, profile and orders concurrently,
// then the catalog. A failed slice keeps its previous value and raises one
// notification; the others are still applied. Loading is cleared at the end
// whatever happened.
func (s *Store) LoadInitialState(ctx context.Context) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var (
		g        errgroup.Group
		cart     = result[[]models.CartLine]{seq: s.begin(sliceCart)}
		wishlist = result[[]models.WishlistEntry]{seq: s.begin(sliceWishlist)}
		profile  = result[*models.Profile]{seq: s.begin(sliceProfile)}
		orders   = result[[]models.Order]{seq: s.begin(sliceOrders)}
	)
	fetchInto(ctx, &g, &cart, s.client.Cart)
	fetchInto(ctx, &g, &wishlist, s.client.Wishlist)
	fetchInto(ctx, &g, &profile, s.client.Profile)
	fetchInto(ctx, &g, &orders, s.client.Orders)
	_ = g.Wait()

	errs := []error{
		applyResult(s, sliceCart, cart, func(st *State, v []models.CartLine) { st.Cart = v }),
		applyResult(s, sliceWishlist, wishlist, func(st *State, v []models.WishlistEntry) { st.Wishlist = v }),
		applyResult(s, sliceProfile, profile, func(st *State, v *models.Profile) { st.Profile = v }),
		applyResult(s, sliceOrders, orders, func(st *State, v []models.Order) { st.Orders = v }),
	}

	errs = append(errs, s.FetchProducts(ctx, api.ProductQuery{}))
	return errors.Join(errs...)
}

// applyResult merges one fan-out result or reports its failure.
func applyResult[T any](s *Store, sl slice, r result[T], set func(*State, T)) error {
	if r.err != nil {
		s.fail("load "+sl.String(), fmt.Sprintf("Failed to load %s.", sl), r.err)
		return fmt.Errorf("load %s: %w", sl, r.err)
	}
	s.apply(sl, r.seq, func(st *State) { set(st, r.value) })
	return nil
}

// FetchProducts replaces the catalog with the server-filtered list. On
// failure the catalog is emptied.
func (s *Store) FetchProducts(ctx context.Context, q api.ProductQuery) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	seq := s.begin(sliceProducts)
	products, err := s.client.Products(ctx, q)
	if err != nil {
		s.apply(sliceProducts, seq, func(st *State) { st.Products = []models.Product{} })
		s.fail("fetch products", "Failed to load products.", err)
		return fmt.Errorf("fetch products: %w", err)
	}

	s.apply(sliceProducts, seq, func(st *State) { st.Products = products })
	return nil
}

// FetchProduct loads a single product. The catalog is left alone.
func (s *Store) FetchProduct(ctx context.Context, id string) (models.Product, error) {
	if s.isClosed() {
		return models.Product{}, ErrStoreClosed
	}

	product, err := s.client.Product(ctx, id)
	if err != nil {
		s.fail("fetch product", "Failed to load product.", err)
		return models.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return product, nil
}

// FetchOrder loads a single order for the confirmation and detail pages.
func (s *Store) FetchOrder(ctx context.Context, id string) (models.Order, error) {
	if s.isClosed() {
		return models.Order{}, ErrStoreClosed
	}

	order, err := s.client.Order(ctx, id)
	if err != nil {
		s.fail("fetch order", "Failed to load order details.", err)
		return models.Order{}, fmt.Errorf("fetch order %s: %w", id, err)
	}
	return order, nil
}
