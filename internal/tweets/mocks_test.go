package tweets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockCounter is a mock implementing Counter
type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) IncMessagesHandled() {
	m.Called()
}

func (m *MockCounter) IncMediaDownloaded() {
	m.Called()
}

// MockFetcher is a mock implementing MetadataFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, tweetID string) (*PostMetadata, error) {
	args := m.Called(ctx, tweetID)
	if meta, ok := args.Get(0).(*PostMetadata); ok {
		return meta, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResolver is a mock implementing Resolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, text string) []string {
	args := m.Called(ctx, text)
	if links, ok := args.Get(0).([]string); ok {
		return links
	}
	return nil
}

// rewriteTransport sends every request to a test server while keeping the
// original request visible on the response, so redirect chains look real.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = req.URL.Host
	resp, err := http.DefaultTransport.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	resp.Request = req
	return resp, nil
}

// newRewritingClient returns a client whose requests all land on server.
func newRewritingClient(server *httptest.Server) *http.Client {
	target, _ := url.Parse(server.URL)
	return &http.Client{Transport: rewriteTransport{target: target}}
}
