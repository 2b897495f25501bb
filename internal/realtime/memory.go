package realtime

import (
	"context"
	"sync"
)

const subscriptionBuffer = 64

// MemoryBroker fans events out inside one process.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string]map[*memorySub]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*memorySub]struct{})}
}

// Publish never blocks: a subscriber with a full buffer already has a
// refetch pending, so the event is dropped for it.
func (b *MemoryBroker) Publish(ctx context.Context, ev ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[ev.Channel()] {
		sub.deliver(ev)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, channels ...string) (Subscription, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	sub := &memorySub{broker: b, channels: channels, ch: make(chan ChangeEvent, subscriptionBuffer)}
	b.mu.Lock()
	for _, c := range channels {
		set, ok := b.subs[c]
		if !ok {
			set = make(map[*memorySub]struct{})
			b.subs[c] = set
		}
		set[sub] = struct{}{}
	}
	b.mu.Unlock()
	return sub, nil
}

type memorySub struct {
	broker   *MemoryBroker
	channels []string

	mu     sync.Mutex
	closed bool
	ch     chan ChangeEvent
}

func (s *memorySub) deliver(ev ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	default:
	}
}

func (s *memorySub) Events() <-chan ChangeEvent { return s.ch }

func (s *memorySub) Close() error {
	s.broker.mu.Lock()
	for _, c := range s.channels {
		if set, ok := s.broker.subs[c]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(s.broker.subs, c)
			}
		}
	}
	s.broker.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}
