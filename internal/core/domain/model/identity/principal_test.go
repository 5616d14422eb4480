package identity_test

import (
	"testing"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("should parse every known role", func(t *testing.T) {
		for s, want := range map[string]identity.Role{
			"consumer": identity.Consumer,
			"vendor":   identity.Vendor,
			"admin":    identity.Admin,
		} {
			got, err := identity.ParseRole(s)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, s, got.String())
		}
	})

	t.Run("should reject unknown and differently cased roles", func(t *testing.T) {
		for _, s := range []string{"", "Admin", "courier"} {
			_, err := identity.ParseRole(s)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestNewPrincipal(t *testing.T) {
	t.Run("should trim and keep the subject", func(t *testing.T) {
		p, err := identity.NewPrincipal("  C1 ", identity.Consumer)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "C1", p.SubjectID())
		assert.True(t, p.Is("C1"))
		assert.False(t, p.IsAdmin())
	})

	t.Run("should collect every validation failure", func(t *testing.T) {
		_, err := identity.NewPrincipal(" ", identity.UnknownRole)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p identity.Principal

		assert.Equal(t, identity.ErrPrincipalIsNotConstructed, p.Validate())
	})
}
