package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// BaseURL is ESPN's public site API root.
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// Scoreboard paths for the sports we aggregate.
	PathFootball   = "football/nfl"
	PathBasketball = "basketball/mens-college-basketball"
	PathGolf       = "golf/pga"
	PathMMA        = "mma/ufc"
)

// Client handles ESPN scoreboard API requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a new ESPN API client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   BaseURL,
		userAgent: "Mozilla/5.0 (compatible; FortunaBot/1.0)",
	}
}

// NewWithBaseURL creates a client against a non-default API root.
// Used by tests to point at a local fixture server.
func NewWithBaseURL(baseURL string) *Client {
	c := New()
	c.baseURL = baseURL
	return c
}

// FetchScoreboard fetches the current scoreboard document for a sport.
func (c *Client) FetchScoreboard(ctx context.Context, sportPath string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sportPath)
	return c.fetch(ctx, url)
}

// fetch makes an HTTP GET request and returns parsed JSON.
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ESPN API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}
