package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// AddressInput is the raw address as submitted at checkout.
type AddressInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Address is a validated postal address inside a supported country.
type Address struct {
	id           kernel.UUID
	firstName    string
	lastName     string
	email        kernel.Email
	phone        string
	addressLine1 string
	addressLine2 string
	city         string
	state        string
	postalCode   string
	country      kernel.Country
}

// NewAddress validates in and reports every problem at once.
func NewAddress(id kernel.UUID, in AddressInput) (Address, error) {
	required := func(name, value string) error {
		if strings.TrimSpace(value) == "" {
			return errs.NewValueIsRequiredError(name)
		}
		return nil
	}

	email, emailErr := kernel.NewEmail(in.Email)
	country, countryErr := kernel.NewCountry(in.Country)
	if err := errors.Join(
		id.Validate(),
		required("first_name", in.FirstName),
		required("last_name", in.LastName),
		emailErr,
		required("address_line_1", in.AddressLine1),
		required("city", in.City),
		required("postal_code", in.PostalCode),
		countryErr,
	); err != nil {
		return Address{}, err
	}

	return Address{
		id:           id,
		firstName:    strings.TrimSpace(in.FirstName),
		lastName:     strings.TrimSpace(in.LastName),
		email:        email,
		phone:        strings.TrimSpace(in.Phone),
		addressLine1: strings.TrimSpace(in.AddressLine1),
		addressLine2: strings.TrimSpace(in.AddressLine2),
		city:         strings.TrimSpace(in.City),
		state:        strings.TrimSpace(in.State),
		postalCode:   strings.TrimSpace(in.PostalCode),
		country:      country,
	}, nil
}

// CopyAs returns the same address under a new identity.
func (a Address) CopyAs(id kernel.UUID) Address {
	c := a
	c.id = id
	return c
}

func (a Address) ID() kernel.UUID { return a.id }
func (a Address) FirstName() string { return a.firstName }
func (a Address) LastName() string { return a.lastName }
func (a Address) Email() kernel.Email { return a.email }
func (a Address) Phone() string { return a.phone }
func (a Address) AddressLine1() string { return a.addressLine1 }
func (a Address) AddressLine2() string { return a.addressLine2 }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() kernel.Country { return a.country }

// Input returns the address in its raw form.
func (a Address) Input() AddressInput {
	return AddressInput{
		FirstName:    a.firstName,
		LastName:     a.lastName,
		Email:        a.email.String(),
		Phone:        a.phone,
		AddressLine1: a.addressLine1,
		AddressLine2: a.addressLine2,
		City:         a.city,
		State:        a.state,
		PostalCode:   a.postalCode,
		Country:      a.country.Code(),
	}
}
