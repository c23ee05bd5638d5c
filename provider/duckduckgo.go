package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/newscout/core"
)

const ddgUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// DuckDuckGo retrieves news through DuckDuckGo's news endpoint.
// It needs no credentials. The native flow has two steps: fetch a vqd
// session token from the HTML front page, then query news.js with it.
type DuckDuckGo struct {
	httpClient *http.Client
	baseURL    string
}

var _ NewsProvider = (*DuckDuckGo)(nil)

// NewDuckDuckGo creates the DuckDuckGo adapter.
func NewDuckDuckGo(timeout time.Duration) *DuckDuckGo {
	return &DuckDuckGo{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://duckduckgo.com",
	}
}

// ddgResult is the provider-native record returned by news.js.
type ddgResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
	Source  string `json:"source"`
	Image   string `json:"image"`
	Date    int64  `json:"date"` // unix seconds
}

type ddgNewsPage struct {
	Results []ddgResult `json:"results"`
}

// News queries DuckDuckGo News and normalizes the results.
func (d *DuckDuckGo) News(ctx context.Context, query string, maxResults int) ([]core.NewsItem, error) {
	vqd, err := d.fetchVQD(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	params := url.Values{}
	params.Set("l", "wt-wt")
	params.Set("o", "json")
	params.Set("noamp", "1")
	params.Set("q", query)
	params.Set("vqd", vqd)

	body, err := d.get(ctx, d.baseURL+"/news.js?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	var page ddgNewsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}

	items := make([]core.NewsItem, 0, len(page.Results))
	for _, r := range page.Results {
		if len(items) >= maxResults {
			break
		}
		item := core.NewsItem{
			Title:  r.Title,
			URL:    r.URL,
			Body:   r.Excerpt,
			Source: r.Source,
			Image:  r.Image,
		}
		if r.Date > 0 {
			item.Date = time.Unix(r.Date, 0).UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items, nil
}

// fetchVQD obtains the session token DuckDuckGo requires on its JSON
// endpoints. The token is embedded in the front page markup.
func (d *DuckDuckGo) fetchVQD(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("ia", "news")

	body, err := d.get(ctx, d.baseURL+"/?"+params.Encode())
	if err != nil {
		return "", err
	}

	vqd := extractVQD(string(body))
	if vqd == "" {
		return "", fmt.Errorf("vqd token not found for query %q", query)
	}
	return vqd, nil
}

func (d *DuckDuckGo) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ddgUserAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, resp.Request.URL.Host)
	}
	return io.ReadAll(resp.Body)
}

// extractVQD pulls the vqd token out of front page markup. The token shows
// up either quoted (vqd="..." / vqd='...') or bare (vqd=...&).
func extractVQD(page string) string {
	idx := strings.Index(page, "vqd=")
	if idx < 0 {
		return ""
	}
	rest := page[idx+len("vqd="):]
	if rest == "" {
		return ""
	}

	switch rest[0] {
	case '"', '\'':
		quote := rest[0]
		rest = rest[1:]
		if end := strings.IndexByte(rest, byte(quote)); end > 0 {
			return rest[:end]
		}
		return ""
	default:
		end := strings.IndexAny(rest, "&\"' ")
		if end < 0 {
			end = len(rest)
		}
		return rest[:end]
	}
}
