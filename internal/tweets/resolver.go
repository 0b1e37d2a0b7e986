package tweets

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/sync/singleflight"
)

// resolveTimeout bounds one shared short-link expansion.
const resolveTimeout = 15 * time.Second

var shortLinkRegex = regexp.MustCompile(`t\.co/[a-zA-Z0-9]+`)

// LinkResolver expands t.co short links into their final destination URLs.
type LinkResolver struct {
	httpClient *http.Client
	group      singleflight.Group
	debug      bool
}

// NewLinkResolver creates a resolver. A nil client falls back to http.DefaultClient.
func NewLinkResolver(client *http.Client, debug bool) *LinkResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &LinkResolver{httpClient: client, debug: debug}
}

// Resolve returns the final URL of every short link found in text, in discovery order.
// Links that fail to resolve are skipped. Duplicates are kept.
func (r *LinkResolver) Resolve(ctx context.Context, text string) []string {
	var resolved []string
	for _, link := range shortLinkRegex.FindAllString(text, -1) {
		if ctx.Err() != nil {
			log.Printf("[LinkResolver Link:%s] Context done, skipping: %v", link, ctx.Err())
			break
		}

		// Identical links resolving concurrently share one request. It runs detached from
		// any single caller's deadline; each caller stops waiting when its own ctx ends.
		ch := r.group.DoChan(link, func() (interface{}, error) {
			reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
			defer cancel()
			return r.expand(reqCtx, link)
		})

		var res singleflight.Result
		select {
		case res = <-ch:
		case <-ctx.Done():
			log.Printf("[LinkResolver Link:%s] Context done while resolving, skipping: %v", link, ctx.Err())
			continue
		}
		if res.Err != nil {
			log.Printf("[LinkResolver Link:%s] Resolution failed, skipping: %v", link, res.Err)
			continue
		}
		finalURL := res.Val.(string)
		if r.debug {
			log.Printf("[LinkResolver Link:%s] Resolved to %s", link, finalURL)
		}
		resolved = append(resolved, finalURL)
	}
	return resolved
}

// expand follows the redirect chain of https://<link> and returns the last requested URL.
func (r *LinkResolver) expand(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+link, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.Request == nil || resp.Request.URL == nil {
		return "", fmt.Errorf("response for %s carries no request URL", link)
	}
	return resp.Request.URL.String(), nil
}
