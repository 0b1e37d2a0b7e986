package tweets

import (
	"context"
	"log"
)

// MetadataFetcher retrieves metadata for a single tweet.
type MetadataFetcher interface {
	Fetch(ctx context.Context, tweetID string) (*PostMetadata, error)
}

// IDExtractor finds tweet IDs in message text.
type IDExtractor interface {
	Extract(ctx context.Context, text string) []string
}

// Pipeline sequences extraction, fetching and responding for one message.
// It holds no per-message state, so Handle may run concurrently.
type Pipeline struct {
	extractor IDExtractor
	fetcher   MetadataFetcher
	responder *Responder
	counter   Counter
	debug     bool
}

// NewPipeline wires the pipeline components together.
func NewPipeline(extractor IDExtractor, fetcher MetadataFetcher, counter Counter, debug bool) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		fetcher:   fetcher,
		responder: NewResponder(counter),
		counter:   counter,
		debug:     debug,
	}
}

// outcome is the result of fetching one tweet.
type outcome struct {
	tweetID string
	meta    *PostMetadata
	err     error
}

// Handle returns the replies for one message, in tweet discovery order.
// A failure for one tweet yields an error notice for it and never stops the others.
func (p *Pipeline) Handle(ctx context.Context, text string) []ReplyAction {
	var actions []ReplyAction
	p.Stream(ctx, text, func(action ReplyAction) {
		actions = append(actions, action)
	})
	return actions
}

// Stream works like Handle but passes each tweet's replies to emit as soon as that
// tweet is done, before the next one is fetched.
func (p *Pipeline) Stream(ctx context.Context, text string, emit func(ReplyAction)) {
	defer p.counter.IncMessagesHandled()

	ids := p.extractor.Extract(ctx, text)
	if len(ids) == 0 {
		emit(noSupportedLink())
		return
	}
	if p.debug {
		log.Printf("[Pipeline] Found %d tweet(s): %v", len(ids), ids)
	}

	for _, id := range ids {
		meta, err := p.fetcher.Fetch(ctx, id)
		for _, action := range p.reply(outcome{tweetID: id, meta: meta, err: err}) {
			emit(action)
		}
	}
}

// reply maps one fetch outcome to its reply actions.
func (p *Pipeline) reply(o outcome) []ReplyAction {
	if o.err != nil {
		log.Printf("[Pipeline Tweet:%s] Error handling tweet: %v", o.tweetID, o.err)
		return []ReplyAction{errorHandlingTweet(o.tweetID)}
	}
	return p.responder.Respond(o.tweetID, o.meta)
}
