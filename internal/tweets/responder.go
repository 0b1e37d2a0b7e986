package tweets

// Responder turns fetched metadata into reply actions.
type Responder struct {
	counter Counter
}

// NewResponder creates a responder that reports sent videos to counter.
func NewResponder(counter Counter) *Responder {
	return &Responder{counter: counter}
}

// Respond emits one direct link per video in encounter order,
// or a single "no video" notice when the post has none.
func (r *Responder) Respond(tweetID string, meta *PostMetadata) []ReplyAction {
	var actions []ReplyAction
	if meta != nil {
		for _, m := range meta.Media {
			if m.Kind != MediaKindVideo {
				continue
			}
			actions = append(actions, directVideoLink(m.URL))
			r.counter.IncMediaDownloaded()
		}
	}
	if len(actions) == 0 {
		return []ReplyAction{tweetHasNoVideo(tweetID)}
	}
	return actions
}
