// Package idempotency deduplicates client retries of state-changing requests.
//
// A request carrying an Idempotency-Key runs at most once per key and TTL.
// While it runs, concurrent retries fail with ErrAlreadyInProgress. Once it
// succeeds, retries receive the stored response instead of running again. A
// failed run releases the key so the client can retry.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrInvalidState      = errors.New("invalid state")
)

// State is the lifecycle stage of a key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

func (s State) String() string {
	return string(s)
}

// Idempotency runs fn once per key and replays its response.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) ([]byte, error), opts ...Option) ([]byte, error)
}

type record struct {
	State    State           `json:"state"`
	Response json.RawMessage `json:"response,omitempty"`
}

// StateTracker implements Idempotency on redis.
type StateTracker struct {
	client redis.Cmdable
	prefix string
}

// New returns a StateTracker storing keys under "idempotency:".
func New(client redis.Cmdable) *StateTracker {
	return &StateTracker{
		client: client,
		prefix: "idempotency:",
	}
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

// Option tunes Exec.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress marker survives a crash.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = d
	}
}

// WithStateTTL sets how long a completed response is replayed.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = d
	}
}

// Exec implements Idempotency. fn must return valid JSON.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) ([]byte, error), opts ...Option) ([]byte, error) {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	fk := s.prefix + key

	state, stored, err := s.acquire(ctx, fk, o.lockDuration)
	if err != nil {
		return nil, err
	}

	switch state {
	case StateInProgress:
		return nil, ErrAlreadyInProgress
	case StateCompleted:
		return stored, nil
	}

	resp, err := fn(ctx)
	if err != nil {
		if delErr := s.client.Del(ctx, fk).Err(); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}

	done, err := json.Marshal(record{State: StateCompleted, Response: resp})
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, fk, done, o.stateTTL).Err(); err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *StateTracker) acquire(ctx context.Context, fk string, lock time.Duration) (State, []byte, error) {
	marker, err := json.Marshal(record{State: StateInProgress})
	if err != nil {
		return StateNone, nil, err
	}

	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, marker, lock).Result()
		if err != nil {
			return StateNone, nil, err
		}
		if acquired {
			return StateNone, nil, nil
		}

		raw, err := s.client.Get(ctx, fk).Bytes()
		if errors.Is(err, redis.Nil) {
			// expired between SetNX and Get
			continue
		}
		if err != nil {
			return StateNone, nil, err
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return StateNone, nil, ErrInvalidState
		}

		switch rec.State {
		case StateInProgress, StateCompleted:
			return rec.State, rec.Response, nil
		default:
			return StateNone, nil, ErrInvalidState
		}
	}

	return StateNone, nil, ErrInvalidState
}
