package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{StatusPending, StatusPreparing}:   true,
		{StatusPreparing, StatusShipped}:   true,
		{StatusShipped, StatusCompleted}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusPreparing, StatusCancelled}: true,
		{StatusShipped, StatusCancelled}:   true,
	}

	for _, from := range Statuses() {
		for _, to := range Statuses() {
			got := from.CanTransition(to)
			want := allowed[[2]OrderStatus{from, to}]
			assert.Equal(t, want, got, "geçiş %s -> %s", from.Label(), to.Label())
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusPreparing.Terminal())
	assert.False(t, StatusShipped.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus(0).Valid())
	assert.False(t, OrderStatus(6).Valid())
}
