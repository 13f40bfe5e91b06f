// Package matching is the client for the roommate matching service, an
// external collaborator consumed by the roommate retrieval branch.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Match is one scored roommate candidate.
type Match struct {
	Name               string            `json:"name"`
	CompatibilityScore float64           `json:"compatibility_score"`
	Preferences        map[string]string `json:"preferences"`
}

// Service finds roommate matches for a user.
type Service interface {
	FindMatches(ctx context.Context, userId int64, limit int) ([]Match, error)
}

type httpService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPService builds a client for the matching API.
func NewHTTPService(baseURL string) Service {
	return &httpService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *httpService) FindMatches(ctx context.Context, userId int64, limit int) ([]Match, error) {
	url := fmt.Sprintf("%s/api/matches?user_id=%d&limit=%d", s.baseURL, userId, limit)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("matching request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("matching error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Matches []Match `json:"matches"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return payload.Matches, nil
}
