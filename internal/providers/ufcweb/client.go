package ufcweb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// EventsURL is the public UFC.com events listing page.
const EventsURL = "https://www.ufc.com/events"

// Client fetches the UFC.com events page. The site serves real browsers,
// so the request carries browser-shaped headers.
type Client struct {
	httpClient *http.Client
	eventsURL  string
}

// New creates a UFC.com page client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		eventsURL: EventsURL,
	}
}

// NewWithURL creates a client against a non-default events URL.
// Used by tests to point at a local fixture server.
func NewWithURL(url string) *Client {
	c := New()
	c.eventsURL = url
	return c
}

// FetchEventsPage retrieves and parses the events listing.
func (c *Client) FetchEventsPage(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.eventsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("UFC.com error: status=%d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing events page: %w", err)
	}

	return doc, nil
}
