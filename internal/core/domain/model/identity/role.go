package identity

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the marketplace role claimed by a credential.
type Role int

const (
	UnknownRole Role = iota
	Consumer
	Vendor
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Consumer: "consumer",
		Vendor:   "vendor",
		Admin:    "admin",
	}
}

// ParseRole converts a role claim into a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
