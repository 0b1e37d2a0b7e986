package tweets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResponder_Respond(t *testing.T) {
	t.Run("NoVideo", func(t *testing.T) {
		counter := new(MockCounter)
		meta := &PostMetadata{Media: []MediaItem{{Kind: MediaKindOther, URL: "https://pbs.twimg.com/a.jpg"}}}

		got := NewResponder(counter).Respond("77", meta)

		assert.Equal(t, []ReplyAction{tweetHasNoVideo("77")}, got)
		counter.AssertNotCalled(t, "IncMediaDownloaded")
	})

	t.Run("EmptyMetadata", func(t *testing.T) {
		counter := new(MockCounter)

		got := NewResponder(counter).Respond("78", &PostMetadata{})

		assert.Equal(t, []ReplyAction{tweetHasNoVideo("78")}, got)
	})

	t.Run("VideosInOrder", func(t *testing.T) {
		counter := new(MockCounter)
		counter.On("IncMediaDownloaded").Return().Times(2)
		meta := &PostMetadata{Media: []MediaItem{
			{Kind: MediaKindVideo, URL: "https://v/1.mp4"},
			{Kind: MediaKindOther, URL: "https://p/1.jpg"},
			{Kind: MediaKindVideo, URL: "https://v/2.mp4"},
		}}

		got := NewResponder(counter).Respond("79", meta)

		assert.Equal(t, []ReplyAction{
			directVideoLink("https://v/1.mp4"),
			directVideoLink("https://v/2.mp4"),
		}, got)
		counter.AssertExpectations(t)
	})
}

type pipelineSuite struct {
	extractor *Extractor
	resolver  *MockResolver
	fetcher   *MockFetcher
	counter   *MockCounter
	pipeline  *Pipeline
}

func setupPipelineSuite(t *testing.T) *pipelineSuite {
	t.Helper()
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(nil)
	fetcher := new(MockFetcher)
	counter := new(MockCounter)
	extractor := NewExtractor(resolver)
	return &pipelineSuite{
		extractor: extractor,
		resolver:  resolver,
		fetcher:   fetcher,
		counter:   counter,
		pipeline:  NewPipeline(extractor, fetcher, counter, true),
	}
}

func TestPipeline_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleVideo", func(t *testing.T) {
		s := setupPipelineSuite(t)
		s.fetcher.On("Fetch", ctx, "12345").
			Return(&PostMetadata{Media: []MediaItem{{Kind: MediaKindVideo, URL: "http://v.mp4"}}}, nil).Once()
		s.counter.On("IncMediaDownloaded").Return().Once()
		s.counter.On("IncMessagesHandled").Return().Once()

		got := s.pipeline.Handle(ctx, "check this out https://x.com/foo/status/12345")

		assert.Equal(t, []ReplyAction{directVideoLink("http://v.mp4")}, got)
		s.fetcher.AssertExpectations(t)
		s.counter.AssertExpectations(t)
	})

	t.Run("NoLink", func(t *testing.T) {
		s := setupPipelineSuite(t)
		s.counter.On("IncMessagesHandled").Return().Once()

		got := s.pipeline.Handle(ctx, "hello world")

		assert.Equal(t, []ReplyAction{noSupportedLink()}, got)
		s.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
		s.counter.AssertExpectations(t)
	})

	t.Run("FailureIsIsolated", func(t *testing.T) {
		s := setupPipelineSuite(t)
		s.fetcher.On("Fetch", ctx, "999").
			Return(nil, &FetchError{TweetID: "999", Err: errors.New("API error (status 500)")}).Once()
		s.fetcher.On("Fetch", ctx, "1000").
			Return(&PostMetadata{Media: []MediaItem{
				{Kind: MediaKindVideo, URL: "https://v/a.mp4"},
				{Kind: MediaKindVideo, URL: "https://v/b.mp4"},
			}}, nil).Once()
		s.counter.On("IncMediaDownloaded").Return().Times(2)
		s.counter.On("IncMessagesHandled").Return().Once()

		got := s.pipeline.Handle(ctx, "https://x.com/a/status/999 https://twitter.com/b/status/1000")

		assert.Equal(t, []ReplyAction{
			errorHandlingTweet("999"),
			directVideoLink("https://v/a.mp4"),
			directVideoLink("https://v/b.mp4"),
		}, got)
		s.fetcher.AssertExpectations(t)
		s.counter.AssertExpectations(t)
	})

	t.Run("NonFetchErrorAlsoIsolated", func(t *testing.T) {
		s := setupPipelineSuite(t)
		s.fetcher.On("Fetch", ctx, "1").Return(nil, errors.New("unexpected")).Once()
		s.fetcher.On("Fetch", ctx, "2").Return(&PostMetadata{}, nil).Once()
		s.counter.On("IncMessagesHandled").Return().Once()

		got := s.pipeline.Handle(ctx, "https://x.com/a/status/1 https://x.com/a/status/2")

		assert.Equal(t, []ReplyAction{errorHandlingTweet("1"), tweetHasNoVideo("2")}, got)
		s.counter.AssertExpectations(t)
	})

	t.Run("DuplicateFetchedOnce", func(t *testing.T) {
		s := setupPipelineSuite(t)
		s.fetcher.On("Fetch", ctx, "5").Return(&PostMetadata{}, nil).Once()
		s.counter.On("IncMessagesHandled").Return().Once()

		got := s.pipeline.Handle(ctx, "https://x.com/a/status/5 https://twitter.com/a/status/5")

		assert.Equal(t, []ReplyAction{tweetHasNoVideo("5")}, got)
		s.fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	})
}

func TestPipeline_Stream(t *testing.T) {
	ctx := context.Background()

	t.Run("EmitsEachTweetBeforeFetchingTheNext", func(t *testing.T) {
		s := setupPipelineSuite(t)
		var emitted []ReplyAction
		s.fetcher.On("Fetch", ctx, "1").
			Return(&PostMetadata{Media: []MediaItem{{Kind: MediaKindVideo, URL: "http://v1.mp4"}}}, nil).Once()
		s.fetcher.On("Fetch", ctx, "2").Run(func(mock.Arguments) {
			assert.Equal(t, []ReplyAction{directVideoLink("http://v1.mp4")}, emitted,
				"first tweet's reply must be emitted before the second fetch starts")
		}).Return(nil, &FetchError{TweetID: "2", Err: context.DeadlineExceeded}).Once()
		s.counter.On("IncMediaDownloaded").Return().Once()
		s.counter.On("IncMessagesHandled").Return().Once()

		s.pipeline.Stream(ctx, "https://x.com/a/status/1 https://x.com/a/status/2", func(action ReplyAction) {
			emitted = append(emitted, action)
		})

		assert.Equal(t, []ReplyAction{directVideoLink("http://v1.mp4"), errorHandlingTweet("2")}, emitted)
		s.fetcher.AssertExpectations(t)
		s.counter.AssertExpectations(t)
	})

	t.Run("NoLink", func(t *testing.T) {
		s := setupPipelineSuite(t)
		s.counter.On("IncMessagesHandled").Return().Once()
		var emitted []ReplyAction

		s.pipeline.Stream(ctx, "hello world", func(action ReplyAction) {
			emitted = append(emitted, action)
		})

		assert.Equal(t, []ReplyAction{noSupportedLink()}, emitted)
	})
}
