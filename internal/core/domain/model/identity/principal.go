package identity

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is an authenticated caller: an opaque subject id issued by the identity
// provider together with the caller's role.
type Principal struct {
	subjectID string
	role      Role

	guard guard.ConstructorGuard
}

// NewPrincipal validates the subject id (non blank) and role.
func NewPrincipal(subjectID string, role Role) (Principal, error) {
	p := Principal{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setSubjectID(subjectID),
		p.setRole(role),
	); err != nil {
		return Principal{}, err
	}

	return p, nil
}

func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

func (p Principal) SubjectID() string {
	return p.subjectID
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) IsAdmin() bool {
	return p.role == Admin
}

// Is reports whether the principal is the subject with the given id.
func (p Principal) Is(subjectID string) bool {
	return p.subjectID == subjectID
}

func (p *Principal) setSubjectID(subjectID string) error {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return errs.NewValueIsRequiredError("subject")
	}
	p.subjectID = subjectID
	return nil
}

func (p *Principal) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
