package realtime

import (
	"context"
	"time"
)

// Debounce reads sub until ctx ends or the subscription closes, calling
// refetch once per burst with the distinct channels that changed. A burst
// ends after window passes without events, or after maxWait at the latest.
func Debounce(ctx context.Context, sub Subscription, window, maxWait time.Duration, refetch func(channels []string)) {
	if maxWait < window {
		maxWait = window
	}
	var (
		timer    *time.Timer
		timerC   <-chan time.Time
		deadline time.Time
		pending  []string
		seen     = map[string]struct{}{}
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := pending
		pending = nil
		seen = map[string]struct{}{}
		timerC = nil
		refetch(batch)
	}

	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				flush()
				return
			}
			now := time.Now()
			if len(pending) == 0 {
				deadline = now.Add(maxWait)
			}
			if _, dup := seen[ev.Channel()]; !dup {
				seen[ev.Channel()] = struct{}{}
				pending = append(pending, ev.Channel())
			}
			wait := window
			if remaining := deadline.Sub(now); remaining < wait {
				wait = remaining
			}
			stop()
			timer = time.NewTimer(wait)
			timerC = timer.C
		case <-timerC:
			flush()
		}
	}
}
