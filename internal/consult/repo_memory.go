package consult

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for tests and local runs without Postgres.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	msgs   []ChatMessage
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

func (r *MemoryRepo) Append(ctx context.Context, msg ChatMessage) (ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return ChatMessage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = r.nextID
	r.nextID++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	r.msgs = append(r.msgs, msg)
	return msg, nil
}

func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string) ([]ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ChatMessage
	for _, msg := range r.msgs {
		if msg.DocumentID == documentID {
			out = append(out, msg)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
