package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "changes:"

// RedisBroker carries change events over Redis pub/sub so every API
// instance sees writes made by the others.
type RedisBroker struct {
	client *redis.Client
	logger Logger
}

// Logger defines minimal logging interface required by the broker.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

func NewRedisBroker(client *redis.Client, logger Logger) *RedisBroker {
	return &RedisBroker{client: client, logger: logger}
}

func (b *RedisBroker) Publish(ctx context.Context, ev ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, redisPrefix+ev.Channel(), data).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, channels ...string) (Subscription, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = redisPrefix + c
	}
	ps := b.client.Subscribe(ctx, names...)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &redisSub{ps: ps, ch: make(chan ChangeEvent, subscriptionBuffer), done: make(chan struct{})}
	go sub.pump(b.logger)
	return sub, nil
}

type redisSub struct {
	ps   *redis.PubSub
	ch   chan ChangeEvent
	done chan struct{}
	once sync.Once
}

func (s *redisSub) pump(logger Logger) {
	defer close(s.ch)
	msgs := s.ps.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var ev ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				if logger != nil {
					logger.Errorf("realtime: bad payload on %s: %v", strings.TrimPrefix(msg.Channel, redisPrefix), err)
				}
				continue
			}
			select {
			case s.ch <- ev:
			default:
			}
		}
	}
}

func (s *redisSub) Events() <-chan ChangeEvent { return s.ch }

func (s *redisSub) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}
