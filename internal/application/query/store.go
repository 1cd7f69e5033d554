package query

import (
	"context"
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Entry is one cached read. Data holds the encoded value so every reader
// decodes its own copy.
type Entry struct {
	Key         string    `json:"key"`
	Data        []byte    `json:"data"`
	FetchedAt   time.Time `json:"fetchedAt"`
	StaleAfter  time.Time `json:"staleAfter"`
	Invalidated bool      `json:"invalidated"`
}

// IsStale reports whether the entry must be refetched before it counts as fresh
func (e *Entry) IsStale(now time.Time) bool {
	return e.Invalidated || !now.Before(e.StaleAfter)
}

// Clone returns a deep copy of e
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	out := *e
	out.Data = append([]byte(nil), e.Data...)
	return &out
}

// Store persists cache entries. Get returns nil, nil on a miss. Invalidate
// marks every entry under prefix for refetch and returns how many matched.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, entry *Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Invalidate(ctx context.Context, prefix string) (int, error)
}

// Broadcaster shares invalidations with other dashboard sessions
type Broadcaster interface {
	Publish(ctx context.Context, prefix string) error
}

// Recorder receives cache events, labelled by resource
type Recorder interface {
	Hit(resource string)
	StaleHit(resource string)
	Miss(resource string)
	FetchStarted(resource string)
	FetchJoined(resource string)
	FetchFailed(resource string, kind shared.ErrorKind)
	Invalidated(resource string, entries int)
}

type nopRecorder struct{}

func (nopRecorder) Hit(string)                           {}
func (nopRecorder) StaleHit(string)                      {}
func (nopRecorder) Miss(string)                          {}
func (nopRecorder) FetchStarted(string)                  {}
func (nopRecorder) FetchJoined(string)                   {}
func (nopRecorder) FetchFailed(string, shared.ErrorKind) {}
func (nopRecorder) Invalidated(string, int)              {}
