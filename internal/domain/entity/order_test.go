package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

func TestCanTransition_TablaCompleta(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusConfirmed, true},
		{entity.OrderStatusPending, entity.OrderStatusCompleted, true}, // venta de mostrador
		{entity.OrderStatusPending, entity.OrderStatusCancelled, true},
		{entity.OrderStatusConfirmed, entity.OrderStatusCompleted, true},
		{entity.OrderStatusConfirmed, entity.OrderStatusCancelled, true},
		{entity.OrderStatusConfirmed, entity.OrderStatusPending, false},
		{entity.OrderStatusCompleted, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCompleted, entity.OrderStatusConfirmed, false},
		{entity.OrderStatusCancelled, entity.OrderStatusPending, false},
		{entity.OrderStatusCancelled, entity.OrderStatusConfirmed, false},
		{entity.OrderStatusPending, entity.OrderStatusPending, false},
		{"DESCONOCIDO", entity.OrderStatusConfirmed, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, entity.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&entity.Order{Status: entity.OrderStatusPending}).IsTerminal())
	assert.False(t, (&entity.Order{Status: entity.OrderStatusConfirmed}).IsTerminal())
	assert.True(t, (&entity.Order{Status: entity.OrderStatusCompleted}).IsTerminal())
	assert.True(t, (&entity.Order{Status: entity.OrderStatusCancelled}).IsTerminal())
}

func TestSerialCanRelease(t *testing.T) {
	assert.True(t, (&entity.Serial{Status: entity.SerialStatusSold}).CanRelease())
	assert.True(t, (&entity.Serial{Status: entity.SerialStatusWarranty}).CanRelease())
	assert.False(t, (&entity.Serial{Status: entity.SerialStatusDefective}).CanRelease(),
		"una unidad defectuosa no vuelve al stock vendible")
}

func TestInventoryRecordAvailable(t *testing.T) {
	rec := &entity.InventoryRecord{QuantityPhysical: 10, QuantityReserved: 3}
	assert.Equal(t, 7, rec.Available())
	rec.MinThreshold = 8
	assert.True(t, rec.BelowThreshold())
}
