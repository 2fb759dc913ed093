package consult

import "context"

// Repo defines persistence for chat messages. Messages are append-only and
// cascade-delete with their document.
type Repo interface {
	// Append stores the message and returns it with its assigned id and
	// creation timestamp.
	Append(ctx context.Context, msg ChatMessage) (ChatMessage, error)
	// ListByDocument returns all messages for a document ordered by id.
	ListByDocument(ctx context.Context, documentID string) ([]ChatMessage, error)
}
