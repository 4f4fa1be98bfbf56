package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/notify"
)

type AddressAction string

const (
	AddressAdd    AddressAction = "ADD"
	AddressUpdate AddressAction = "UPDATE"
	AddressDelete AddressAction = "DELETE"
)

func (a AddressAction) verb() string {
	switch a {
	case AddressAdd:
		return "added"
	case AddressUpdate:
		return "updated"
	default:
		return "deleted"
	}
}

// UpdateAddresses mutates one address and then refetches the whole profile,
// since the server may reassign the default address. The default address is
// never deleted: that is refused locally with a warning and no request.
func (s *Store) UpdateAddresses(ctx context.Context, action AddressAction, addressID string, payload *models.AddressInput) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	failPrefix := fmt.Sprintf("Failed to %s address.", strings.ToLower(string(action)))
	addressID = strings.TrimSpace(addressID)

	var call func() error
	switch action {
	case AddressAdd, AddressUpdate:
		if payload == nil {
			err := errors.New("address details are required")
			s.fail("update addresses", failPrefix, err)
			return err
		}
		if action == AddressUpdate && addressID == "" {
			s.fail("update addresses", failPrefix, ErrAddressNotFound)
			return ErrAddressNotFound
		}
		in := *payload
		if err := in.Validate(); err != nil {
			s.fail("update addresses", failPrefix, err)
			return err
		}
		if action == AddressAdd {
			call = func() error { return s.client.AddAddress(ctx, in) }
		} else {
			call = func() error { return s.client.UpdateAddress(ctx, addressID, in) }
		}
	case AddressDelete:
		if addressID == "" {
			s.fail("update addresses", failPrefix, ErrAddressNotFound)
			return ErrAddressNotFound
		}
		if addr, ok := s.State().Profile.Address(addressID); ok && addr.IsDefault {
			s.alert("Cannot delete default address. Please set another address as default first.", notify.Warning)
			return ErrDefaultAddressDelete
		}
		call = func() error { return s.client.DeleteAddress(ctx, addressID) }
	default:
		err := fmt.Errorf("%w: %s", ErrInvalidAction, action)
		s.fail("update addresses", "Failed to update address.", err)
		return err
	}

	if err := call(); err != nil {
		s.fail("update addresses", failPrefix, err)
		return fmt.Errorf("%s address: %w", strings.ToLower(string(action)), err)
	}

	seq := s.begin(sliceProfile)
	profile, err := s.client.Profile(ctx)
	if err != nil {
		s.fail("update addresses", failPrefix, err)
		return fmt.Errorf("refetch profile: %w", err)
	}
	s.apply(sliceProfile, seq, func(st *State) { st.Profile = profile })
	s.alert(fmt.Sprintf("Address %s successfully.", action.verb()), notify.Success)
	return nil
}

// SetDefaultAddress marks an existing address as the default.
func (s *Store) SetDefaultAddress(ctx context.Context, addressID string) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	addr, ok := s.State().Profile.Address(strings.TrimSpace(addressID))
	if !ok {
		s.fail("set default address", "Failed to update address.", ErrAddressNotFound)
		return ErrAddressNotFound
	}
	if addr.IsDefault {
		return nil
	}

	in := models.InputFrom(addr)
	in.IsDefault = true
	return s.UpdateAddresses(ctx, AddressUpdate, addr.ID, &in)
}
