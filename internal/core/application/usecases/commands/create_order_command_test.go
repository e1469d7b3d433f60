package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	caller := mustIdentity(t, "m1", identity.Member, kernel.RegionIndia)
	dup := kernel.NewUUID()
	lines := []services.PricingLine{{MenuItemID: dup, Quantity: 1}, {MenuItemID: dup, Quantity: 2}}

	cmd, err := commands.NewCreateOrderCommand(id, caller, lines,
		&commands.PaymentInput{Type: "card", Details: map[string]string{"cardNumber": "1234567890123456"}})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Len(t, cmd.Lines(), 2)
	assert.Equal(t, []kernel.UUID{dup}, cmd.MenuItemIDs())
	require.NotNil(t, cmd.Payment())
	assert.Equal(t, "************3456", cmd.Payment().Details()["cardNumber"])
}

func TestNewCreateOrderCommand_WithoutPayment(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(),
		mustIdentity(t, "m1", identity.Member, kernel.RegionIndia),
		[]services.PricingLine{{MenuItemID: kernel.NewUUID(), Quantity: 1}}, nil)

	require.NoError(t, err)
	assert.Nil(t, cmd.Payment())
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(),
		mustIdentity(t, "m1", identity.Member, kernel.RegionIndia), nil, nil)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
}

func TestNewCreateOrderCommand_InvalidQuantity(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(),
		mustIdentity(t, "m1", identity.Member, kernel.RegionIndia),
		[]services.PricingLine{{MenuItemID: kernel.NewUUID(), Quantity: 0}}, nil)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateOrderCommand_InvalidPayment(t *testing.T) {
	caller := mustIdentity(t, "m1", identity.Member, kernel.RegionIndia)
	lines := []services.PricingLine{{MenuItemID: kernel.NewUUID(), Quantity: 1}}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), caller, lines, &commands.PaymentInput{Type: "BITCOIN"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCreateOrderCommand(kernel.NewUUID(), caller, lines, &commands.PaymentInput{Type: "UPI"})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_InvalidOrderIDAndCaller(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, identity.Identity{},
		[]services.PricingLine{{MenuItemID: kernel.NewUUID(), Quantity: 1}}, nil)

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, identity.ErrIdentityIsNotConstructed)
}
