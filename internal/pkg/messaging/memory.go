package messaging

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

// Memory is an in-process Messaging. Each queue group receives every message
// once; consumers without a group each receive their own copy.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed bool
}

type memorySub struct {
	group string
	ch    chan *memoryMessage
}

// NewMemory returns an empty in-process broker.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]*memorySub)}
}

// Close stops accepting messages.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Publish fans msg out to the subscribers of subject. It blocks while a
// subscriber's buffer is full.
func (m *Memory) Publish(ctx context.Context, subject string, msg OutgoingMessage) error {
	if subject == "" {
		return ErrSubjectRequired
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	targets := pickTargets(m.subs[subject])
	m.mu.RUnlock()

	for _, sub := range targets {
		mm := &memoryMessage{
			subject:    subject,
			body:       append([]byte(nil), msg.Body...),
			headers:    maps.Clone(msg.Headers),
			receivedAt: time.Now(),
		}
		select {
		case sub.ch <- mm:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func pickTargets(subs []*memorySub) []*memorySub {
	seen := make(map[string]struct{}, len(subs))
	out := make([]*memorySub, 0, len(subs))
	for _, s := range subs {
		if s.group != "" {
			if _, ok := seen[s.group]; ok {
				continue
			}
			seen[s.group] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}

// Consume registers handler for subject and blocks until ctx is done.
func (m *Memory) Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error {
	if subject == "" {
		return ErrSubjectRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	sub := &memorySub{group: co.queueGroup, ch: make(chan *memoryMessage, 64)}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.subs[subject] = append(m.subs[subject], sub)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case mm := <-sub.ch:
					herr := handleSafely(ctx, subject, func() error { return handler(ctx, mm) })
					settle(ctx, mm, co.autoAck, herr)
				}
			}
		})
	}

	<-ctx.Done()
	wg.Wait()

	m.mu.Lock()
	subs := m.subs[subject]
	for i, s := range subs {
		if s == sub {
			m.subs[subject] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	return ctx.Err()
}

// Subscribed reports how many consumers are registered for subject.
func (m *Memory) Subscribed(subject string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[subject])
}

type memoryMessage struct {
	subject    string
	body       []byte
	headers    map[string]string
	receivedAt time.Time
	done       atomic.Bool
	acked      atomic.Bool
}

func (m *memoryMessage) Body() []byte             { return m.body }
func (m *memoryMessage) Subject() string          { return m.subject }
func (m *memoryMessage) Timestamp() time.Time     { return m.receivedAt }
func (m *memoryMessage) Header(key string) string { return m.headers[key] }
func (m *memoryMessage) responded() bool          { return m.done.Load() }

func (m *memoryMessage) Ack(context.Context) error {
	if !m.done.Swap(true) {
		m.acked.Store(true)
	}
	return nil
}

func (m *memoryMessage) Nack(context.Context) error {
	m.done.Store(true)
	return nil
}
