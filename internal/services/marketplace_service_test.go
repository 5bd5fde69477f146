package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketplaceServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func availableVehicleRepo() *mockVehicleRepository {
	return &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) {
			return &models.Vehicle{
				ID:     id,
				GUID:   "veh-123",
				Make:   "Toyota",
				Model:  "Corolla",
				Year:   2022,
				Price:  250000,
				Status: models.VehicleStatusAvailable,
			}, nil
		},
	}
}

func TestPublishVehicle_PostsToRemoteFunction(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotBody map[string]interface{}

	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	})

	service := NewMarketplaceService(server.URL, "test-key", server.Client(), availableVehicleRepo())

	err := service.PublishVehicle(context.Background(), 20)
	require.NoError(t, err)

	assert.Equal(t, "/functions/marketplace-publish", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Toyota", gotBody["make"])
	assert.Equal(t, "veh-123", gotBody["guid"])
}

func TestPublishVehicle_RejectsSoldVehicle(t *testing.T) {
	called := false
	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) {
			return &models.Vehicle{ID: id, Status: models.VehicleStatusSold}, nil
		},
	}
	service := NewMarketplaceService(server.URL, "test-key", server.Client(), vehicleRepo)

	err := service.PublishVehicle(context.Background(), 20)
	require.Error(t, err)
	assert.Equal(t, "solo se publican vehículos disponibles", err.Error())
	assert.False(t, called, "no request should reach the remote for an unavailable vehicle")
}

func TestInvoke_PassesRemoteErrorThrough(t *testing.T) {
	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "error": "token expired"})
	})

	service := NewMarketplaceService(server.URL, "", server.Client(), availableVehicleRepo())

	err := service.PublishVehicle(context.Background(), 20)
	require.Error(t, err)
	assert.Equal(t, "token expired", err.Error())
}

func TestInvoke_FallbackWhenRemoteOmitsMessage(t *testing.T) {
	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": false})
	})

	service := NewMarketplaceService(server.URL, "", server.Client(), availableVehicleRepo())

	err := service.UnpublishVehicle(context.Background(), 20)
	require.Error(t, err)
	assert.Equal(t, marketplaceFallbackError, err.Error())
}

func TestInvoke_FallbackOnMalformedEnvelope(t *testing.T) {
	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	})

	service := NewMarketplaceService(server.URL, "", server.Client(), availableVehicleRepo())

	err := service.ConnectPlatform(context.Background(), 1, "facebook")
	require.Error(t, err)
	assert.Equal(t, marketplaceFallbackError, err.Error())
}

func TestSyncAll_ParsesPayload(t *testing.T) {
	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"payload": map[string]interface{}{
				"synced": 12,
				"errors": []string{"veh-99: imagen faltante"},
			},
		})
	})

	service := NewMarketplaceService(server.URL, "", server.Client(), availableVehicleRepo())

	result, err := service.SyncAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Synced)
	assert.Equal(t, []string{"veh-99: imagen faltante"}, result.Errors)
}

func TestGetMetaAdsInsights_ParsesMetrics(t *testing.T) {
	server := newMarketplaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/meta-ads-insights", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"payload": map[string]interface{}{
				"impressions": 15000,
				"clicks":      420,
				"leads":       18,
				"spend":       350.75,
			},
		})
	})

	service := NewMarketplaceService(server.URL, "", server.Client(), availableVehicleRepo())

	insights, err := service.GetMetaAdsInsights(context.Background(), 1, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), insights.Impressions)
	assert.Equal(t, int64(420), insights.Clicks)
	assert.Equal(t, int64(18), insights.Leads)
	assert.InDelta(t, 350.75, insights.Spend, 0.001)
}
