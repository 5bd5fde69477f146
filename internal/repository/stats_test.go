package repository

import (
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestVehicleStats_AddStatusCount(t *testing.T) {
	stats := &VehicleStats{}
	for status, count := range map[string]int64{
		models.VehicleStatusAvailable:    12,
		models.VehicleStatusReserved:     3,
		models.VehicleStatusSold:         40,
		models.VehicleStatusInRepair:     2,
		models.VehicleStatusOutOfService: 1,
	} {
		stats.addStatusCount(status, count)
	}

	assert.Equal(t, int64(12), stats.Available)
	assert.Equal(t, int64(3), stats.Reserved)
	assert.Equal(t, int64(40), stats.Sold)
	assert.Equal(t, int64(2), stats.InRepair)
	assert.Equal(t, int64(1), stats.OutOfService)
	assert.Equal(t, int64(58), stats.Total)
}

func TestVehicleStats_UnknownStatusCountsTowardTotal(t *testing.T) {
	stats := &VehicleStats{}
	stats.addStatusCount(models.VehicleStatusAvailable, 5)
	stats.addStatusCount("estado_legado", 2)

	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(5), stats.Available)
}

func TestSaleStats_AddStatusCount(t *testing.T) {
	stats := &SaleStats{}
	stats.addStatusCount(models.SaleStatusPending, 4)
	stats.addStatusCount(models.SaleStatusCompleted, 20)
	stats.addStatusCount(models.SaleStatusCancelled, 1)

	assert.Equal(t, int64(4), stats.Pending)
	assert.Equal(t, int64(20), stats.Completed)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, int64(25), stats.Total)
}

func TestLeadStats_AddStatusCount(t *testing.T) {
	stats := &LeadStats{}
	for status, count := range map[string]int64{
		models.LeadStatusNew:         10,
		models.LeadStatusContacted:   8,
		models.LeadStatusInterested:  6,
		models.LeadStatusQuoting:     4,
		models.LeadStatusNegotiating: 3,
		models.LeadStatusSold:        15,
		models.LeadStatusLost:        9,
	} {
		stats.addStatusCount(status, count)
	}

	assert.Equal(t, int64(10), stats.New)
	assert.Equal(t, int64(8), stats.Contacted)
	assert.Equal(t, int64(6), stats.Interested)
	assert.Equal(t, int64(4), stats.Quoting)
	assert.Equal(t, int64(3), stats.Negotiating)
	assert.Equal(t, int64(15), stats.Sold)
	assert.Equal(t, int64(9), stats.Lost)
	assert.Equal(t, int64(55), stats.Total)
}
