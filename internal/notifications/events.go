package notifications

import "encoding/json"

// Event types pushed over the websocket channels.
const (
	EventNotification     = "notification"
	EventPostLikedChanged = "post_liked_changed"
	EventPostCommented    = "post_commented"
)

// Event is the envelope for every message pushed to websocket clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// PostLikeChange is the payload for like-count updates on a post.
type PostLikeChange struct {
	PostID    uint `json:"postId"`
	LikeCount int  `json:"likeCount"`
}

// Encode marshals the event for transport. Marshal failures are programmer
// errors (payloads are plain structs), so a failure yields an empty message.
func (e Event) Encode() string {
	data, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(data)
}

// NewLikeChangedEvent builds the event broadcast to a post's watchers when
// its like count changes.
func NewLikeChangedEvent(postID uint, likeCount int) Event {
	return Event{
		Type:    EventPostLikedChanged,
		Payload: PostLikeChange{PostID: postID, LikeCount: likeCount},
	}
}

// NewPostCommentedEvent builds the event broadcast to a post's watchers when
// a new comment lands.
func NewPostCommentedEvent(payload interface{}) Event {
	return Event{Type: EventPostCommented, Payload: payload}
}

// NewNotificationEvent builds the event pushed to a single user's
// notification channel.
func NewNotificationEvent(payload interface{}) Event {
	return Event{Type: EventNotification, Payload: payload}
}
