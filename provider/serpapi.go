package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/poiesic/newscout/core"
)

// SerpAPI retrieves Google News results through serpapi.com.
// It requires an API key.
type SerpAPI struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

var _ NewsProvider = (*SerpAPI)(nil)

// NewSerpAPI creates the SerpAPI adapter.
func NewSerpAPI(apiKey string, timeout time.Duration) *SerpAPI {
	return &SerpAPI{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://serpapi.com",
		apiKey:     apiKey,
	}
}

// serpResult is the provider-native record in the news_results array.
type serpResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  struct {
		Name string `json:"name"`
	} `json:"source"`
	Thumbnail string `json:"thumbnail"`
	Date      string `json:"date"`
}

type serpPage struct {
	NewsResults []serpResult `json:"news_results"`
	Error       string       `json:"error"`
}

// News queries Google News via SerpAPI and normalizes the results.
func (s *SerpAPI) News(ctx context.Context, query string, maxResults int) ([]core.NewsItem, error) {
	if s.apiKey == "" {
		return nil, ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("engine", "google_news")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var page serpPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	if page.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, page.Error)
	}

	items := make([]core.NewsItem, 0, len(page.NewsResults))
	for _, r := range page.NewsResults {
		if len(items) >= maxResults {
			break
		}
		items = append(items, core.NewsItem{
			Title:  r.Title,
			URL:    r.Link,
			Body:   r.Snippet,
			Source: r.Source.Name,
			Image:  r.Thumbnail,
			Date:   r.Date,
		})
	}
	return items, nil
}
