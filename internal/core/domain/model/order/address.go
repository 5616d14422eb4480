package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the shipping destination captured at checkout.
// line2 and province are optional; country is an ISO 3166-1 alpha-2 code.
type Address struct {
	line1      string
	line2      string
	city       string
	province   string
	postalCode string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress trims every field, upper-cases the country code and checks that the
// mandatory fields are present.
//
// Example:
//
//	addr, err := order.NewAddress("1 Main St", "", "Springfield", "IL", "62701", "us")
//	// addr.Country() == "US"
func NewAddress(line1, line2, city, province, postalCode, country string) (Address, error) {
	a := Address{
		line2:    strings.TrimSpace(line2),
		province: strings.TrimSpace(province),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setRequired(&a.line1, "shippingAddress.line1", line1),
		a.setRequired(&a.city, "shippingAddress.city", city),
		a.setRequired(&a.postalCode, "shippingAddress.postalCode", postalCode),
		a.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) Province() string   { return a.province }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

func (a *Address) setRequired(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return errs.NewValueIsRequiredError("shippingAddress.country")
	}
	if len(country) != 2 || !isASCIILetter(country[0]) || !isASCIILetter(country[1]) {
		return errs.NewValueIsInvalidErrorWithCause(
			"shippingAddress.country",
			fmt.Errorf("%q is not a 2-letter country code", country),
		)
	}
	a.country = country
	return nil
}

func isASCIILetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
