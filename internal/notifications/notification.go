package notifications

import (
	"time"

	"github.com/2beens/flexly/internal/users"
)

type Type string

const TypeFollow Type = "follow"

// ListLimit is the number of the latest notifications returned to the recipient.
const ListLimit = 50

type Notification struct {
	ID          string        `json:"id"`
	RecipientID string        `json:"recipientId"`
	SenderID    string        `json:"senderId"`
	Type        Type          `json:"type"`
	Read        bool          `json:"read"`
	Message     string        `json:"message,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	Sender      users.Summary `json:"sender"`
}
