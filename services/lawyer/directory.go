package lawyer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"advoqat/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	directoryCachePrefix = "lawyers:"
	directoryCacheTTL    = 5 * time.Minute
)

// DefaultLawyerService fetches lawyer profiles from the core platform API
// with a short-lived Redis read-through cache.
type DefaultLawyerService struct {
	BaseURL     string
	HTTPClient  *http.Client
	CacheClient *redis.Client
	Logger      *zap.Logger
}

func NewDefaultLawyerService(baseURL string, cacheClient *redis.Client, logger *zap.Logger) *DefaultLawyerService {
	return &DefaultLawyerService{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
		CacheClient: cacheClient,
		Logger:      logger,
	}
}

// Search returns lawyers matching the query, applying the rating filter
// locally so cached directory pages stay reusable across filter values.
func (s *DefaultLawyerService) Search(ctx context.Context, query models.LawyerSearchQuery) ([]models.Lawyer, error) {
	lawyers, err := s.fetchDirectory(ctx, query.Specialty, query.Query)
	if err != nil {
		return nil, err
	}

	if query.MinRating <= 0 {
		return lawyers, nil
	}
	filtered := lawyers[:0]
	for _, l := range lawyers {
		if l.Rating >= query.MinRating {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

// GetByID fetches one lawyer profile.
func (s *DefaultLawyerService) GetByID(ctx context.Context, id string) (*models.Lawyer, error) {
	var lawyer models.Lawyer
	if err := s.get(ctx, "/lawyers/"+url.PathEscape(id), &lawyer); err != nil {
		return nil, err
	}
	return &lawyer, nil
}

func (s *DefaultLawyerService) fetchDirectory(ctx context.Context, specialty, q string) ([]models.Lawyer, error) {
	cacheKey := directoryCachePrefix + specialty + ":" + q

	if s.CacheClient != nil {
		if data, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.Lawyer
			if json.Unmarshal([]byte(data), &cached) == nil {
				return cached, nil
			}
		}
	}

	params := url.Values{}
	if specialty != "" {
		params.Set("specialty", specialty)
	}
	if q != "" {
		params.Set("q", q)
	}
	path := "/lawyers"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var lawyers []models.Lawyer
	if err := s.get(ctx, path, &lawyers); err != nil {
		return nil, err
	}

	if s.CacheClient != nil {
		if data, err := json.Marshal(lawyers); err == nil {
			if err := s.CacheClient.Set(ctx, cacheKey, data, directoryCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache lawyer directory", zap.Error(err))
			}
		}
	}
	return lawyers, nil
}

func (s *DefaultLawyerService) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("lawyer directory request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read directory response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("lawyer directory error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}
	return nil
}
