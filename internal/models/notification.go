package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	// NotificationLike is emitted when a post receives a like.
	NotificationLike NotificationType = "Like"
	// NotificationComment is emitted when a post receives a comment.
	NotificationComment NotificationType = "Comment"
	// NotificationFollow is emitted when a user gains a follower.
	NotificationFollow NotificationType = "Follow"
	// NotificationMention is emitted when a user is mentioned in a post.
	NotificationMention NotificationType = "Mention"
	// NotificationRepost is emitted when a post is reposted.
	NotificationRepost NotificationType = "Repost"
	// NotificationSystem is reserved for platform announcements.
	NotificationSystem NotificationType = "System"
)

// Notification is the durable record of a social event. The realtime push is
// a best-effort mirror of this row; the row is what the notifications list
// endpoint serves.
//
// Deleting the receiving user cascades to their notifications; deleting the
// sender is restricted so history referencing them stays intact.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	SenderID    uint             `gorm:"not null;index" json:"senderId"`
	Sender      User             `gorm:"foreignKey:SenderID;constraint:OnDelete:RESTRICT" json:"-"`
	ReceiverID  uint             `gorm:"not null;index" json:"receiverId"`
	Receiver    User             `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Type        NotificationType `gorm:"type:varchar(10);not null" json:"type"`
	Content     string           `json:"content"`
	PostPreview string           `json:"postPreview,omitempty"`
	PostID      *uint            `json:"postId,omitempty"`
	Post        *Post            `gorm:"foreignKey:PostID" json:"-"`
	IsRead      bool             `gorm:"default:false" json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// NotificationView is a notification annotated with the sender's public
// projection, as returned by the list endpoint and pushed over the
// notifications websocket.
type NotificationView struct {
	ID          uint             `json:"id"`
	Type        NotificationType `json:"type"`
	Content     string           `json:"content"`
	PostPreview string           `json:"postPreview,omitempty"`
	PostID      *uint            `json:"postId,omitempty"`
	IsRead      bool             `json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
	User        NotificationUser `json:"user"`
}

// NotificationUser is the minimal sender projection embedded in a
// NotificationView.
type NotificationUser struct {
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatarURL"`
}

// AsView builds the API/websocket payload for the notification using the
// given sender.
func (n *Notification) AsView(sender *User) NotificationView {
	view := NotificationView{
		ID:          n.ID,
		Type:        n.Type,
		Content:     n.Content,
		PostPreview: n.PostPreview,
		PostID:      n.PostID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
	if sender != nil {
		view.User = NotificationUser{
			DisplayName: sender.DisplayName,
			Username:    sender.Username,
			AvatarURL:   sender.AvatarURL,
		}
	}
	return view
}
