package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCanTransition(t *testing.T) {
	assert.True(t, QuoteCanTransition(QuoteStatusDraft, QuoteStatusSubmitted))
	assert.True(t, QuoteCanTransition(QuoteStatusSubmitted, QuoteStatusSent))
	assert.True(t, QuoteCanTransition(QuoteStatusSent, QuoteStatusAccepted))
	assert.True(t, QuoteCanTransition(QuoteStatusSent, QuoteStatusRejected))

	// Черновик нельзя принять, минуя отправку клиенту.
	assert.False(t, QuoteCanTransition(QuoteStatusDraft, QuoteStatusAccepted))
	// Принятая и отклонённая котировки — терминальные состояния.
	assert.False(t, QuoteCanTransition(QuoteStatusAccepted, QuoteStatusRejected))
	assert.False(t, QuoteCanTransition(QuoteStatusRejected, QuoteStatusDraft))
}

func TestShipmentCanTransition(t *testing.T) {
	assert.True(t, ShipmentCanTransition(ShipmentStatusPending, ShipmentStatusInTransit))
	assert.True(t, ShipmentCanTransition(ShipmentStatusPending, ShipmentStatusCancelled))
	assert.True(t, ShipmentCanTransition(ShipmentStatusInTransit, ShipmentStatusDelivered))

	assert.False(t, ShipmentCanTransition(ShipmentStatusPending, ShipmentStatusDelivered))
	assert.False(t, ShipmentCanTransition(ShipmentStatusDelivered, ShipmentStatusCancelled))
	assert.False(t, ShipmentCanTransition(ShipmentStatusCancelled, ShipmentStatusInTransit))
}

func TestPickupCanTransition(t *testing.T) {
	assert.True(t, PickupCanTransition(PickupStatusNew, PickupStatusInProgress))
	assert.True(t, PickupCanTransition(PickupStatusNew, PickupStatusCancelled))
	assert.True(t, PickupCanTransition(PickupStatusInProgress, PickupStatusCompleted))
	assert.True(t, PickupCanTransition(PickupStatusInProgress, PickupStatusCancelled))

	assert.False(t, PickupCanTransition(PickupStatusNew, PickupStatusCompleted))
	assert.False(t, PickupCanTransition(PickupStatusCompleted, PickupStatusNew))
	assert.False(t, PickupCanTransition(PickupStatusCancelled, PickupStatusInProgress))
}
