package servers_test

import (
	"testing"

	"marketplace/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/orders",
		"/orders/user/{userId}",
		"/orders/{id}",
		"/orders/{id}/status",
		"/orders/{id}/cancel",
		"/orders/{id}/tracking",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	statuses := doc.Components.Schemas["OrderStatus"].Value.Enum
	assert.Len(t, statuses, 6)

	page := doc.Components.Parameters["Page"].Value.Schema.Value
	require.NotNil(t, page.Max)
	assert.InDelta(t, 1_000_000, *page.Max, 0)
}

func TestSwaggerDocIsRegistered(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.JSONEq(t, string(servers.RawSpec()), doc)
}
