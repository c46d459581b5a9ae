package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"vedetta/internal/domain"
)

// LabelService renders "last modified" labels for displayed pages. It
// is read-only and page-scoped: one API lookup per call, no shared
// state with the history store.
type LabelService struct {
	baseURL string
	cfg     domain.LabelConfig
	client  *http.Client

	// now is swappable in tests
	now func() time.Time
}

// NewLabelService creates a label service for the given wiki. The
// formatting configuration is fixed at construction.
func NewLabelService(baseURL string, cfg domain.LabelConfig) *LabelService {
	return &LabelService{
		baseURL: baseURL,
		cfg:     cfg,
		client:  &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
}

// revisionResponse is the subset of the query API response we read.
type revisionResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Revisions []struct {
				Timestamp time.Time `json:"timestamp"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// LastRevision fetches the timestamp of the page's latest revision.
func (s *LabelService) LastRevision(ctx context.Context, title domain.PageName) (time.Time, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "revisions")
	q.Set("titles", string(title))
	q.Set("rvprop", "timestamp")
	q.Set("rvlimit", "1")
	q.Set("format", "json")
	q.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/w/api.php?"+q.Encode(), nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("mediawiki: build revision request: %w", err)
	}
	req.Header.Set("User-Agent", "vedetta/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("mediawiki: fetch revision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("mediawiki: revision query returned %s", resp.Status)
	}

	var decoded revisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return time.Time{}, fmt.Errorf("mediawiki: decode revision response: %w", err)
	}

	if len(decoded.Query.Pages) == 0 || decoded.Query.Pages[0].Missing {
		return time.Time{}, fmt.Errorf("mediawiki: page %q not found", title)
	}
	revs := decoded.Query.Pages[0].Revisions
	if len(revs) == 0 {
		return time.Time{}, fmt.Errorf("mediawiki: page %q has no revisions", title)
	}
	return revs[0].Timestamp, nil
}

// Label fetches the latest revision and renders the configured label.
// One completion point: a label or an error, never both.
func (s *LabelService) Label(ctx context.Context, title domain.PageName) (string, error) {
	revised, err := s.LastRevision(ctx, title)
	if err != nil {
		return "", err
	}
	return domain.LastModifiedLabel(revised, s.now(), s.cfg), nil
}
