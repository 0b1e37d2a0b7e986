package tweets

// MediaKind classifies a media attachment of a post.
type MediaKind int

const (
	MediaKindOther MediaKind = iota
	MediaKindVideo
)

// MediaItem is one media attachment of a post.
type MediaItem struct {
	Kind MediaKind
	URL  string
}

// PostMetadata is the fetched representation of a post.
type PostMetadata struct {
	Media []MediaItem
}

// Localization message IDs used by reply actions.
const (
	MsgDirectVideoLink    = "MsgDirectVideoLink"
	MsgTweetHasNoVideo    = "MsgTweetHasNoVideo"
	MsgErrorHandlingTweet = "MsgErrorHandlingTweet"
	MsgNoSupportedLink    = "MsgNoSupportedLink"
)

// ReplyAction is one unit of outbound text produced for an inbound message.
// MessageID and Data are rendered through the locales bundle by the caller.
type ReplyAction struct {
	MessageID string
	Data      map[string]interface{}
}

// Counter receives the pipeline's statistics increments.
// Implementations must be safe for concurrent use.
type Counter interface {
	IncMessagesHandled()
	IncMediaDownloaded()
}

func directVideoLink(url string) ReplyAction {
	return ReplyAction{MessageID: MsgDirectVideoLink, Data: map[string]interface{}{"URL": url}}
}

func tweetHasNoVideo(tweetID string) ReplyAction {
	return ReplyAction{MessageID: MsgTweetHasNoVideo, Data: map[string]interface{}{"TweetID": tweetID}}
}

func errorHandlingTweet(tweetID string) ReplyAction {
	return ReplyAction{MessageID: MsgErrorHandlingTweet, Data: map[string]interface{}{"TweetID": tweetID}}
}

func noSupportedLink() ReplyAction {
	return ReplyAction{MessageID: MsgNoSupportedLink}
}
