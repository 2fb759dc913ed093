package consult

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one append-only entry in a document's consultation log.
// Ordering is by the monotonic id assigned on insert.
type ChatMessage struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"documentId"`
	UserID     string    `json:"-"`
	Sender     string    `json:"sender"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
