package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedEvent(orderID, clientRef, cartKey string) ports.PaymentEvent {
	return ports.PaymentEvent{
		ID:   "evt_1",
		Type: ports.EventCheckoutSessionCompleted,
		CheckoutSession: &ports.CompletedCheckoutSession{
			ID:                "cs_1",
			OrderID:           orderID,
			ClientReferenceID: clientRef,
			CartSessionKey:    cartKey,
			PaymentIntentID:   "pi_1",
		},
	}
}

func handleConfirm(t *testing.T, uow *MockUoW, event ports.PaymentEvent) (commands.PaymentOutcome, error) {
	t.Helper()
	cmd, err := commands.NewConfirmPaymentCommand(event)
	require.NoError(t, err)
	h := commands.NewConfirmPaymentCommandHandler(factory[commands.CheckoutUoW]{uow}, testLogger)
	return h.Handle(t.Context(), cmd)
}

func TestConfirmPaymentCommandHandler_MarksOrderPaidAndCompletesCart(t *testing.T) {
	f := newCatalogFixture(t, 5)
	o := newPendingOrder(t, f, "cart-key")
	c, _ := newCartWithItem(t, "cart-key", f, 2)

	uow := newMockUoW()
	uow.expectTx(mock.Anything)
	uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
	uow.carts.On("FindLatestBySessionKey", mock.Anything, "cart-key").Return(c, nil).Once()
	uow.carts.On("Update", mock.Anything, c).Return(nil).Once()

	outcome, err := handleConfirm(t, uow, completedEvent(o.ID().String(), "", "cart-key"))
	require.NoError(t, err)
	assert.Equal(t, commands.PaymentMarkedPaid, outcome)
	assert.True(t, o.IsPaid())
	assert.Equal(t, order.Paid, o.Status())
	assert.Equal(t, "pi_1", o.PaymentIntentID())
	assert.Equal(t, cart.StatusCompleted, c.Status())
	uow.assertAll(t)
}

func TestConfirmPaymentCommandHandler_FallsBackToClientReference(t *testing.T) {
	f := newCatalogFixture(t, 5)
	o := newPendingOrder(t, f, "cart-key")

	uow := newMockUoW()
	uow.expectTx(mock.Anything)
	uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
	uow.carts.On("FindLatestBySessionKey", mock.Anything, "cart-key").
		Return(nil, errs.NewObjectNotFoundError("cart", "cart-key")).Once()

	outcome, err := handleConfirm(t, uow, completedEvent("", o.ID().String(), "cart-key"))
	require.NoError(t, err)
	assert.Equal(t, commands.PaymentMarkedPaid, outcome)
	uow.assertAll(t)
}

func TestConfirmPaymentCommandHandler_AlreadyPaidIsIdempotent(t *testing.T) {
	f := newCatalogFixture(t, 5)
	o := newPendingOrder(t, f, "cart-key")
	_, err := o.MarkPaid("pi_first")
	require.NoError(t, err)
	c, _ := newCartWithItem(t, "cart-key", f, 2)
	require.NoError(t, c.Complete())

	uow := newMockUoW()
	uow.expectTx(mock.Anything)
	uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.carts.On("FindLatestBySessionKey", mock.Anything, "cart-key").Return(c, nil).Once()
	uow.carts.On("Update", mock.Anything, c).Return(nil).Once()

	outcome, err := handleConfirm(t, uow, completedEvent(o.ID().String(), "", "cart-key"))
	require.NoError(t, err)
	assert.Equal(t, commands.PaymentAlreadyPaid, outcome)
	assert.Equal(t, "pi_first", o.PaymentIntentID())
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestConfirmPaymentCommandHandler_AcknowledgedWithoutChanges(t *testing.T) {
	t.Run("other event type", func(t *testing.T) {
		uow := newMockUoW()
		outcome, err := handleConfirm(t, uow, ports.PaymentEvent{ID: "evt", Type: "charge.refunded"})
		require.NoError(t, err)
		assert.Equal(t, commands.PaymentIgnored, outcome)
		uow.assertAll(t)
	})

	t.Run("no order id", func(t *testing.T) {
		uow := newMockUoW()
		outcome, err := handleConfirm(t, uow, completedEvent("", "", "cart-key"))
		require.NoError(t, err)
		assert.Equal(t, commands.PaymentMissingOrder, outcome)
		uow.assertAll(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		id := kernel.NewUUID()
		uow := newMockUoW()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.orders.On("GetForUpdate", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

		outcome, err := handleConfirm(t, uow, completedEvent(id.String(), "", "cart-key"))
		require.NoError(t, err)
		assert.Equal(t, commands.PaymentMissingOrder, outcome)
		uow.assertAll(t)
	})
}

func TestConfirmPaymentCommandHandler_UnexpectedErrorIsReturned(t *testing.T) {
	id := kernel.NewUUID()
	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.orders.On("GetForUpdate", mock.Anything, id).Return(nil, errors.New("connection reset")).Once()

	_, err := handleConfirm(t, uow, completedEvent(id.String(), "", "cart-key"))
	require.EqualError(t, err, "connection reset")
	uow.assertAll(t)
}
