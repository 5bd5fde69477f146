package statemachine

import (
	"context"
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleComplete(t *testing.T) {
	ctx := context.Background()
	sale := &models.Sale{Status: models.SaleStatusPending}

	require.NoError(t, NewSaleFSM(sale).Complete(ctx))
	assert.Equal(t, models.SaleStatusCompleted, sale.Status)
	assert.NotNil(t, sale.CompletedAt)
}

func TestSaleCancel(t *testing.T) {
	ctx := context.Background()

	for _, state := range []string{models.SaleStatusPending, models.SaleStatusCompleted} {
		sale := &models.Sale{Status: state}
		err := NewSaleFSM(sale).Cancel(ctx)
		assert.NoError(t, err, "cancelling from %s", state)
		assert.Equal(t, models.SaleStatusCancelled, sale.Status)
	}
}

func TestSaleInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	completed := &models.Sale{Status: models.SaleStatusCompleted}
	assert.Error(t, NewSaleFSM(completed).Complete(ctx))

	cancelled := &models.Sale{Status: models.SaleStatusCancelled}
	assert.Error(t, NewSaleFSM(cancelled).Complete(ctx))
	assert.Error(t, NewSaleFSM(cancelled).Cancel(ctx))
}
