package store

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"
)

// MaxFailureReasonLength bounds the persisted failure reason in characters.
const MaxFailureReasonLength = 400

var (
	ErrNotFound   = errors.New("request could not be found")
	ErrNotUpdated = errors.New("request not updated")
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusBroadcast Status = "broadcast"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
)

// Request is one approved drip. TxHash and FailureReason are empty when NULL.
type Request struct {
	ID            int64
	Address       string
	IP            string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Status        Status
	TxHash        string
	FailureReason string
}

// Cursor is the keyset position of a broadcast scan. The zero value starts at the oldest row.
type Cursor struct {
	CreatedAt time.Time
	ID        int64
}

func (r *Request) Cursor() Cursor {
	return Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
}

type RequestStore interface {
	Get(ctx context.Context, id int64) (*Request, error)
	// SetBroadcast moves a queued or failed request to broadcast with the given hash.
	SetBroadcast(ctx context.Context, id int64, txHash string) error
	// SetSent moves a broadcast request to sent if it still carries txHash.
	SetSent(ctx context.Context, id int64, txHash string) error
	// SetFailed marks a queued or failed request as failed. Broadcast and sent requests are left to the hash guarded updates.
	SetFailed(ctx context.Context, id int64, reason string) error
	// SetBroadcastFailed marks a broadcast request as failed if it still carries txHash. An empty txHash matches NULL.
	SetBroadcastFailed(ctx context.Context, id int64, txHash string, reason string) error
	// GetBroadcast returns up to limit broadcast requests after the cursor, oldest first.
	GetBroadcast(ctx context.Context, after Cursor, limit int) ([]*Request, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// TruncateReason cuts reason to MaxFailureReasonLength characters.
func TruncateReason(reason string) string {
	if utf8.RuneCountInString(reason) <= MaxFailureReasonLength {
		return reason
	}

	return string([]rune(reason)[:MaxFailureReasonLength])
}
