package models

import (
	"time"
)

// FriendRequestStatus represents the status of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestStatusPending indicates a request awaiting the recipient's answer.
	FriendRequestStatusPending FriendRequestStatus = "pending"
	// FriendRequestStatusAccepted indicates an accepted request; the pair are friends.
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
)

// FriendRequest is a directional invitation from Sender to Recipient.
// At most one pending request may exist per ordered (sender, recipient)
// pair; an accepted request transitions in place and becomes the
// friendship edge between the two users.
type FriendRequest struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	SenderID    uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"sender_id"`
	RecipientID uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"recipient_id"`
	Status      FriendRequestStatus `gorm:"type:varchar(20);default:'pending';index:idx_friend_requests_status" json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}
