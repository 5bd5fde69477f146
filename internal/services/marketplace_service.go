package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/autoventa/autoventa-api/internal/repository"
)

// fallback when the remote function fails without an error message
const marketplaceFallbackError = "error desconocido del servicio de marketplace"

// MarketplaceService invokes the remote marketplace/ads functions. Each
// call is a single HTTP POST with a JSON body; failures surface as-is
// with the server's message. No retry or circuit breaking happens here.
type MarketplaceService struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	vehicleRepo repository.VehicleRepository
}

func NewMarketplaceService(baseURL, apiKey string, client *http.Client, vehicleRepo repository.VehicleRepository) *MarketplaceService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &MarketplaceService{
		baseURL:     baseURL,
		apiKey:      apiKey,
		client:      client,
		vehicleRepo: vehicleRepo,
	}
}

// remoteResponse is the uniform envelope every remote function returns
type remoteResponse struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error"`
	Payload json.RawMessage `json:"payload"`
}

// invoke posts body to the named remote function and checks the ok marker
func (s *MarketplaceService) invoke(ctx context.Context, function string, body interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/functions/%s", s.baseURL, function)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.New(marketplaceFallbackError)
	}

	if !out.OK {
		if out.Error != "" {
			return nil, errors.New(out.Error)
		}
		return nil, errors.New(marketplaceFallbackError)
	}

	return out.Payload, nil
}

// ConnectPlatform links a marketplace platform account to a branch.
// Credential exchange happens server-side; we only pass the platform name.
func (s *MarketplaceService) ConnectPlatform(ctx context.Context, branchID uint, platform string) error {
	body := map[string]interface{}{
		"branch_id": branchID,
		"platform":  platform,
	}
	_, err := s.invoke(ctx, "marketplace-connect", body)
	return err
}

// PublishVehicle pushes a vehicle listing to the connected platforms
func (s *MarketplaceService) PublishVehicle(ctx context.Context, vehicleID uint) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return ErrNotFound
	}
	if !vehicle.IsAvailable() {
		return errors.New("solo se publican vehículos disponibles")
	}

	body := map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"guid":       vehicle.GUID,
		"make":       vehicle.Make,
		"model":      vehicle.Model,
		"year":       vehicle.Year,
		"price":      vehicle.Price,
		"images":     vehicle.Images,
	}
	_, err = s.invoke(ctx, "marketplace-publish", body)
	return err
}

// UnpublishVehicle removes a vehicle listing from the platforms
func (s *MarketplaceService) UnpublishVehicle(ctx context.Context, vehicleID uint) error {
	body := map[string]interface{}{
		"vehicle_id": vehicleID,
	}
	_, err := s.invoke(ctx, "marketplace-unpublish", body)
	return err
}

// SyncResult reports the outcome of a full listing sync
type SyncResult struct {
	Synced int      `json:"synced"`
	Errors []string `json:"errors"`
}

// SyncAll reconciles every listing for a branch. Per-item errors come
// back in the payload; only an envelope-level failure becomes an error.
func (s *MarketplaceService) SyncAll(ctx context.Context, branchID uint) (*SyncResult, error) {
	body := map[string]interface{}{
		"branch_id": branchID,
	}
	payload, err := s.invoke(ctx, "marketplace-sync-all", body)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, result); err != nil {
			return nil, errors.New(marketplaceFallbackError)
		}
	}
	return result, nil
}

// AdsInsights holds the Meta Ads metrics for a date range
type AdsInsights struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Leads       int64   `json:"leads"`
	Spend       float64 `json:"spend"`
}

// GetMetaAdsInsights fetches ad performance metrics for a branch
func (s *MarketplaceService) GetMetaAdsInsights(ctx context.Context, branchID uint, startDate, endDate string) (*AdsInsights, error) {
	body := map[string]interface{}{
		"branch_id":  branchID,
		"start_date": startDate,
		"end_date":   endDate,
	}
	payload, err := s.invoke(ctx, "meta-ads-insights", body)
	if err != nil {
		return nil, err
	}

	insights := &AdsInsights{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, insights); err != nil {
			return nil, errors.New(marketplaceFallbackError)
		}
	}
	return insights, nil
}
