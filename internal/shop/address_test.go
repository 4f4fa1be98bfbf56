package shop

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/notify"
)

func validInput() *models.AddressInput {
	return &models.AddressInput{
		FullName: "Ravi Kumar",
		Street:   "22 Anna Salai",
		City:     "Chennai",
		State:    "TN",
		ZipCode:  "600002",
		Phone:    "9840000000",
	}
}

func TestAddAddressRefetchesProfile(t *testing.T) {
	f := newFixture(t)
	f.address(true)
	ctx := context.Background()
	f.load(t)

	in := validInput()
	in.IsDefault = true
	require.NoError(t, f.store.UpdateAddresses(ctx, AddressAdd, "", in))

	st := f.store.State()
	require.Len(t, st.Profile.Addresses, 2)
	assert.False(t, st.Profile.Addresses[0].IsDefault, "server reassigns the default")
	def, ok := st.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "Chennai", def.City)

	assert.Equal(t, "Address added successfully.", f.alerts.last().Message)
	assert.Equal(t, 2, f.srv.Calls(http.MethodGet, "/user/profile"))
}

func TestDeleteDefaultAddressIsRefusedLocally(t *testing.T) {
	f := newFixture(t)
	def := f.address(true)
	other := f.address(false)
	ctx := context.Background()
	f.load(t)

	err := f.store.UpdateAddresses(ctx, AddressDelete, def.ID, nil)
	assert.ErrorIs(t, err, ErrDefaultAddressDelete)
	assert.Equal(t, 0, f.srv.Calls(http.MethodDelete, "/user/addresses/:id"))
	last := f.alerts.last()
	assert.Equal(t, "Cannot delete default address. Please set another address as default first.", last.Message)
	assert.Equal(t, notify.Warning, last.Severity)

	require.NoError(t, f.store.UpdateAddresses(ctx, AddressDelete, other.ID, nil))
	assert.Len(t, f.store.State().Profile.Addresses, 1)
	assert.Equal(t, "Address deleted successfully.", f.alerts.last().Message)
}

func TestSetDefaultAddress(t *testing.T) {
	f := newFixture(t)
	first := f.address(true)
	second := f.address(false)
	ctx := context.Background()
	f.load(t)

	require.NoError(t, f.store.SetDefaultAddress(ctx, second.ID))

	st := f.store.State()
	a, _ := st.Profile.Address(first.ID)
	b, _ := st.Profile.Address(second.ID)
	assert.False(t, a.IsDefault)
	assert.True(t, b.IsDefault)
	assert.Equal(t, "Address updated successfully.", f.alerts.last().Message)

	assert.ErrorIs(t, f.store.SetDefaultAddress(ctx, "nope"), ErrAddressNotFound)
}

func TestAddressFailuresLeaveProfileAlone(t *testing.T) {
	f := newFixture(t)
	addr := f.address(true)
	ctx := context.Background()
	f.load(t)
	before := f.store.State().Profile

	in := validInput()
	in.City = "   "
	require.Error(t, f.store.UpdateAddresses(ctx, AddressUpdate, addr.ID, in))
	assert.Equal(t, "Failed to update address. (invalid address: city is required)", f.alerts.last().Message)
	assert.Equal(t, 0, f.srv.Calls(http.MethodPut, "/user/addresses/:id"))

	f.srv.Fail(http.MethodPost, "/user/addresses", http.StatusInternalServerError, "Could not save address")
	require.Error(t, f.store.UpdateAddresses(ctx, AddressAdd, "", validInput()))
	assert.Equal(t, "Failed to add address. (Could not save address)", f.alerts.last().Message)

	require.Error(t, f.store.UpdateAddresses(ctx, AddressAction("ARCHIVE"), addr.ID, nil))
	assert.Equal(t, before, f.store.State().Profile)
	assert.Equal(t, 1, f.srv.Calls(http.MethodGet, "/user/profile"))
}
