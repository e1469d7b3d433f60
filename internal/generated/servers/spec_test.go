package servers_test

import (
	"testing"

	"ordering/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/restaurants",
		"/api/v1/restaurants/{restaurantId}",
		"/api/v1/orders",
		"/api/v1/orders/{orderId}",
		"/api/v1/orders/{orderId}/status",
		"/api/v1/orders/{orderId}/cancel",
		"/api/v1/orders/{orderId}/pay",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
	assert.Contains(t, doc.Components.SecuritySchemes, "bearerAuth")
}
