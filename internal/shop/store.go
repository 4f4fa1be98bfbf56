// Package shop holds the shopping context store: the in-memory cache of the
// catalog, cart, wishlist, profile and orders of one session. Every mutation
// goes through the remote API and the store only ever adopts what the server
// returns.
package shop

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/api"
	"storefront/internal/models"
	"storefront/internal/notify"
)

// API is the subset of the HTTP client the store depends on.
type API interface {
	Products(ctx context.Context, q api.ProductQuery) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)
	Cart(ctx context.Context) ([]models.CartLine, error)
	AddToCart(ctx context.Context, productID string, size models.Size) ([]models.CartLine, error)
	RemoveFromCart(ctx context.Context, productID string, size models.Size) ([]models.CartLine, error)
	ChangeQuantity(ctx context.Context, productID string, size models.Size, action api.QuantityAction) (api.CartUpdate, error)
	ClearCart(ctx context.Context) ([]models.CartLine, error)
	Wishlist(ctx context.Context) ([]models.WishlistEntry, error)
	UpdateWishlist(ctx context.Context, productID string, size models.Size, action api.WishlistAction) ([]models.WishlistEntry, error)
	ClearWishlist(ctx context.Context) ([]models.WishlistEntry, error)
	Profile(ctx context.Context) (*models.Profile, error)
	Orders(ctx context.Context) ([]models.Order, error)
	Order(ctx context.Context, id string) (models.Order, error)
	AddAddress(ctx context.Context, in models.AddressInput) error
	UpdateAddress(ctx context.Context, id string, in models.AddressInput) error
	DeleteAddress(ctx context.Context, id string) error
	Checkout(ctx context.Context, in models.CheckoutRequest) (*models.CheckoutResult, error)
}

// State is a snapshot of the store. Profile is nil until it has loaded.
type State struct {
	Products   []models.Product       `json:"products"`
	Cart       []models.CartLine      `json:"cart"`
	Wishlist   []models.WishlistEntry `json:"wishlist"`
	Profile    *models.Profile        `json:"profile"`
	Orders     []models.Order         `json:"orders"`
	Loading    bool                   `json:"loading"`
	SearchTerm string                 `json:"searchTerm"`
}

func (st State) clone() State {
	out := st
	out.Products = slices.Clone(st.Products)
	out.Cart = slices.Clone(st.Cart)
	out.Wishlist = slices.Clone(st.Wishlist)
	out.Orders = slices.Clone(st.Orders)
	if st.Profile != nil {
		p := *st.Profile
		p.Addresses = slices.Clone(st.Profile.Addresses)
		out.Profile = &p
	}
	return out
}

type slice int

const (
	sliceProducts slice = iota
	sliceCart
	sliceWishlist
	sliceProfile
	sliceOrders
	numSlices
)

func (s slice) String() string {
	switch s {
	case sliceProducts:
		return "products"
	case sliceCart:
		return "cart"
	case sliceWishlist:
		return "wishlist"
	case sliceProfile:
		return "profile"
	case sliceOrders:
		return "orders"
	default:
		return "unknown"
	}
}

type subscriber struct {
	id int
	fn func(State)
}

type Store struct {
	client   API
	alerts   *notify.Center
	logger   *zap.Logger
	alertTTL time.Duration

	mu      sync.Mutex
	state   State
	issued  [numSlices]uint64
	applied [numSlices]uint64
	closed  bool
	subs    []subscriber
	nextSub int
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithAlerts routes notifications to an existing centre.
func WithAlerts(center *notify.Center) Option {
	return func(s *Store) { s.alerts = center }
}

// WithAlertTTL sets how long store notifications stay active.
func WithAlertTTL(ttl time.Duration) Option {
	return func(s *Store) { s.alertTTL = ttl }
}

func New(client API, opts ...Option) *Store {
	s := &Store{
		client:   client,
		logger:   zap.NewNop(),
		alertTTL: 3 * time.Second,
		state: State{
			Products: []models.Product{},
			Cart:     []models.CartLine{},
			Wishlist: []models.WishlistEntry{},
			Orders:   []models.Order{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.alerts == nil {
		s.alerts = notify.NewCenter(s.alertTTL)
	}
	return s
}

func (s *Store) Alerts() *notify.Center {
	return s.alerts
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
		})
	}
}

// Close detaches the store. Responses that arrive afterwards are discarded
// and further operations return ErrStoreClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// begin issues the next request sequence number for a slice.
func (s *Store) begin(sl slice) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[sl]++
	return s.issued[sl]
}

// apply runs mutate unless a later-issued request for the slice has already
// been applied or the store is closed.
func (s *Store) apply(sl slice, seq uint64, mutate func(*State)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if seq <= s.applied[sl] {
		s.mu.Unlock()
		s.logger.Debug("dropping stale response",
			zap.Stringer("slice", sl),
			zap.Uint64("seq", seq))
		return false
	}
	s.applied[sl] = seq
	mutate(&s.state)
	s.publishLocked()
	return true
}

// update mutates fields that are not backed by a request.
func (s *Store) update(mutate func(*State)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	mutate(&s.state)
	s.publishLocked()
}

// publishLocked releases the lock and fans the new snapshot out.
func (s *Store) publishLocked() {
	snapshot := s.state.clone()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

// AddAlert raises a notification. It never touches the stored state.
func (s *Store) AddAlert(message string, severity notify.Severity, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.alertTTL
	}
	s.alerts.Add(message, severity, ttl)
}

func (s *Store) alert(message string, severity notify.Severity) {
	if s.isClosed() {
		return
	}
	s.AddAlert(message, severity, 0)
}

// fail logs a failed action and raises "<prefix> (<message>)".
func (s *Store) fail(action, prefix string, err error) {
	s.logger.Error("store action failed",
		zap.String("action", action),
		zap.String("kind", api.Classify(err).String()),
		zap.Error(err))
	s.alert(fmt.Sprintf("%s (%s)", prefix, api.Message(err)), notify.Danger)
}

// SetSearchTerm stores the trimmed search term shared across pages.
func (s *Store) SetSearchTerm(term string) {
	term = strings.TrimSpace(term)
	s.update(func(st *State) { st.SearchTerm = term })
}

func (s *Store) setLoading(loading bool) {
	s.update(func(st *State) { st.Loading = loading })
}
