package lyrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"lrcfetch/model"
)

// DefaultBaseURL is the public lrclib.net API root.
const DefaultBaseURL = "https://lrclib.net/api"

const (
	userAgent      = "lrcfetch/1.0 (https://github.com/lrcfetch/lrcfetch)"
	requestTimeout = 15 * time.Second

	// requestDelay is slept before every search to stay within the API's
	// informal rate limits.
	requestDelay = 500 * time.Millisecond
)

var (
	// ErrNoResult indicates the search produced no usable candidates, for
	// whatever reason. Not every track has lyrics; callers treat this as an
	// expected outcome, not a hard failure.
	ErrNoResult = errors.New("no search results")

	// ErrNoLyrics indicates a candidate carries neither synced nor plain
	// lyric text.
	ErrNoLyrics = errors.New("result contains no lyrics")
)

// Client searches lrclib for lyrics. Construct with NewClient; the
// underlying HTTP client reuses connections across requests.
type Client struct {
	BaseURL string
	Debug   bool

	httpClient *http.Client
	sleep      func(time.Duration)
}

// NewClient returns a Client for the given API root. Debug enables
// candidate dumps and match diagnostics on every search.
func NewClient(baseURL string, debug bool) *Client {
	return &Client{
		BaseURL:    baseURL,
		Debug:      debug,
		httpClient: &http.Client{Timeout: requestTimeout},
		sleep:      time.Sleep,
	}
}

// Search queries the API for the given identity and returns the first
// candidate. The API orders results by relevance and the first entry is
// taken as-is; no local re-ranking happens. Transport errors, non-200
// responses, malformed bodies and empty result sets all come back as
// ErrNoResult with detail attached.
func (c *Client) Search(identity model.TrackIdentity) (model.SearchResult, error) {
	c.sleep(requestDelay)

	params := url.Values{}
	params.Set("artist_name", identity.Artist)
	params.Set("track_name", identity.Title)
	reqURL := fmt.Sprintf("%s/search?%s", c.BaseURL, params.Encode())

	if c.Debug {
		slog.Debug("Searching for lyrics", "url", reqURL)
	}

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	defer resp.Body.Close()

	if c.Debug {
		slog.Debug("Search response", "status", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return model.SearchResult{}, fmt.Errorf("%w: status %d", ErrNoResult, resp.StatusCode)
	}

	var results []model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.SearchResult{}, fmt.Errorf("%w: %v", ErrNoResult, err)
	}

	if len(results) == 0 {
		return model.SearchResult{}, ErrNoResult
	}

	if c.Debug {
		dumpCandidates(results)
		if mismatched(identity, results[0]) {
			slog.Warn("Best result does not resemble the query",
				"artist", identity.Artist,
				"title", identity.Title,
				"result_artist", results[0].ArtistName,
				"result_title", results[0].TrackName,
			)
		}
	}

	return results[0], nil
}

// ExtractPayload picks the most useful lyric text from a candidate,
// preferring the synced form.
func (c *Client) ExtractPayload(result model.SearchResult) (model.LyricPayload, error) {
	if result.SyncedLyrics != "" {
		return model.LyricPayload{Text: result.SyncedLyrics, Synced: true}, nil
	}

	if result.PlainLyrics != "" {
		return model.LyricPayload{Text: result.PlainLyrics}, nil
	}

	return model.LyricPayload{}, ErrNoLyrics
}

func dumpCandidates(results []model.SearchResult) {
	slog.Debug("Search returned candidates", "count", len(results))

	const maxDump = 3
	for i, result := range results {
		if i == maxDump {
			break
		}
		slog.Debug("Candidate", "rank", i+1, "artist", result.ArtistName, "title", result.TrackName)
	}
}

var _ model.Resolver = &Client{}
