package tweets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// FetchError reports a failed metadata lookup for a tweet.
type FetchError struct {
	TweetID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch tweet %s: %v", e.TweetID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// vxResponse is the subset of the vxtwitter API response the bot consumes.
// MediaExtended stays raw so an absent field can be told apart from an explicit null.
type vxResponse struct {
	MediaExtended json.RawMessage `json:"media_extended"`
}

type vxMedia struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Fetcher retrieves tweet metadata from the vxtwitter API.
type Fetcher struct {
	httpClient *http.Client
	endpoint   string // fmt template with a single %s for the tweet ID
}

// NewFetcher creates a fetcher. A nil client falls back to http.DefaultClient.
func NewFetcher(client *http.Client, endpoint string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{httpClient: client, endpoint: endpoint}
}

// Fetch performs a single GET for tweetID. Every failure is returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, tweetID string) (*PostMetadata, error) {
	meta, err := f.fetch(ctx, tweetID)
	if err != nil {
		return nil, &FetchError{TweetID: tweetID, Err: err}
	}
	return meta, nil
}

func (f *Fetcher) fetch(ctx context.Context, tweetID string) (*PostMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(f.endpoint, tweetID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	var decoded *vxResponse
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded == nil {
		return nil, errors.New("decode response: empty body")
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, errors.New("decode response: unexpected data after JSON object")
	}

	items, err := decodeMedia(decoded.MediaExtended)
	if err != nil {
		return nil, err
	}

	meta := &PostMetadata{Media: make([]MediaItem, 0, len(items))}
	for i, m := range items {
		if m == nil {
			return nil, fmt.Errorf("decode response: media item %d is null", i)
		}
		kind := MediaKindOther
		if m.Type == "video" {
			kind = MediaKindVideo
			if m.URL == "" {
				return nil, fmt.Errorf("decode response: video item %d has no url", i)
			}
		}
		meta.Media = append(meta.Media, MediaItem{Kind: kind, URL: m.URL})
	}
	return meta, nil
}

// decodeMedia parses media_extended. An absent field means no media; null or a non-list is an error.
func decodeMedia(raw json.RawMessage) ([]*vxMedia, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New("decode response: media_extended is null")
	}
	var items []*vxMedia
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode response: media_extended: %w", err)
	}
	return items, nil
}
