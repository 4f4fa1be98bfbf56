package shop

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"storefront/internal/api"
	"storefront/internal/fakeapi"
	"storefront/internal/models"
	"storefront/internal/notify"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// alertLog records every notification raised through a store.
type alertLog struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (l *alertLog) record(n notify.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, n)
}

func (l *alertLog) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.items))
	for _, n := range l.items {
		out = append(out, n.Message)
	}
	return out
}

func (l *alertLog) last() notify.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return notify.Notification{}
	}
	return l.items[len(l.items)-1]
}

type fixture struct {
	srv    *fakeapi.Server
	client *api.Client
	store  *Store
	alerts *alertLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithHandler(t, fakeapi.New(), nil)
}

// newFixtureWithHandler serves srv, optionally through wrap.
func newFixtureWithHandler(t *testing.T, srv *fakeapi.Server, wrap func(http.Handler) http.Handler) *fixture {
	t.Helper()

	handler := srv.Handler()
	if wrap != nil {
		handler = wrap(handler)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := api.New(ts.URL+fakeapi.BasePath, api.WithHTTPClient(ts.Client()))
	store := New(client, WithAlertTTL(time.Minute))
	t.Cleanup(store.Close)

	log := &alertLog{}
	unsubscribe := store.Alerts().Subscribe(log.record)
	t.Cleanup(unsubscribe)

	return &fixture{srv: srv, client: client, store: store, alerts: log}
}

func (f *fixture) product(name string, price int64, sizes ...string) models.Product {
	return f.srv.AddProduct(models.Product{
		Name:   name,
		Price:  decimal.NewFromInt(price),
		Sizes:  sizes,
		Rating: 4,
	})
}

func (f *fixture) address(isDefault bool) models.Address {
	return f.srv.AddAddress(models.AddressInput{
		FullName:  "Asha Rao",
		Street:    "4 Park Street",
		City:      "Kolkata",
		State:     "WB",
		ZipCode:   "700016",
		Phone:     "9830000000",
		IsDefault: isDefault,
	})
}

func (f *fixture) load(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.LoadInitialState(context.Background()))
}
