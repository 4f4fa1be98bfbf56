package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Address represents a single shipping address of the user.
type Address struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

// AddressInput is the payload for address ADD and UPDATE requests.
type AddressInput struct {
	FullName  string `json:"fullName" binding:"required" validate:"required"`
	Street    string `json:"street" binding:"required" validate:"required"`
	City      string `json:"city" binding:"required" validate:"required"`
	State     string `json:"state" binding:"required" validate:"required"`
	ZipCode   string `json:"zipCode" binding:"required" validate:"required"`
	Phone     string `json:"phone" binding:"required" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

// InputFrom copies an existing address into a mutation payload.
func InputFrom(a Address) AddressInput {
	return AddressInput{
		FullName:  a.FullName,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Phone:     a.Phone,
		IsDefault: a.IsDefault,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate trims every text field and checks that none is empty.
func (in *AddressInput) Validate() error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Street = strings.TrimSpace(in.Street)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Phone = strings.TrimSpace(in.Phone)

	validateOnce.Do(func() { validate = validator.New() })

	err := validate.Struct(in)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		return fmt.Errorf("invalid address: %s", strings.Join(details, ", "))
	}
	return err
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// Profile is the user profile returned by GET /user/profile.
type Profile struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses"`
}

// Address looks up an address by id.
func (p *Profile) Address(id string) (Address, bool) {
	if p == nil {
		return Address{}, false
	}
	for _, a := range p.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// DefaultAddress returns the default address, falling back to the first one.
func (p *Profile) DefaultAddress() (Address, bool) {
	if p == nil || len(p.Addresses) == 0 {
		return Address{}, false
	}
	for _, a := range p.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return p.Addresses[0], true
}
