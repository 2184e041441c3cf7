package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/repository"
)

// insightService sends inventory and rental snapshots to a generative
// summarization endpoint and relays the free-text answer. The endpoint is an
// opaque collaborator: any failure degrades to a canned summary rather than
// an error, so the dashboard insight panel never blocks on it.
type insightService struct {
	endpoint      string
	apiKey        string
	client        *http.Client
	inventoryRepo repository.InventoryRepository
	rentalRepo    repository.RentalRepository
}

func NewInsightService(
	endpoint, apiKey string,
	timeout time.Duration,
	inventoryRepo repository.InventoryRepository,
	rentalRepo repository.RentalRepository,
) InsightService {
	return &insightService{
		endpoint:      endpoint,
		apiKey:        apiKey,
		client:        &http.Client{Timeout: timeout},
		inventoryRepo: inventoryRepo,
		rentalRepo:    rentalRepo,
	}
}

type insightRequest struct {
	Inventory any `json:"inventory"`
	Rentals   any `json:"rentals"`
}

type insightResponse struct {
	Insights string `json:"insights"`
}

func (s *insightService) GenerateInsights(ctx context.Context) (string, error) {
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return "", err
	}

	if s.endpoint == "" {
		return fallbackInsights(len(items), len(rentals)), nil
	}

	payload, err := json.Marshal(insightRequest{Inventory: items, Rentals: rentals})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	logger.ExternalServiceCall("insights", "generate", "endpoint", s.endpoint)
	resp, err := s.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("insights", "generate", err)
		return fallbackInsights(len(items), len(rentals)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.ExternalServiceResult("insights", "generate", fmt.Errorf("status %d", resp.StatusCode))
		return fallbackInsights(len(items), len(rentals)), nil
	}

	var out insightResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Insights == "" {
		logger.ExternalServiceResult("insights", "generate", err)
		return fallbackInsights(len(items), len(rentals)), nil
	}

	logger.ExternalServiceResult("insights", "generate", nil)
	return out.Insights, nil
}

func fallbackInsights(itemCount, rentalCount int) string {
	return fmt.Sprintf(
		"Insights are temporarily unavailable. Tracking %d asset types across %d rental contracts; review the dashboard statistics for current utilization.",
		itemCount, rentalCount)
}
