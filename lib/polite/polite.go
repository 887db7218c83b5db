// Package polite paces outbound requests against state legislature
// sites. These are public servers run on small budgets, hammering
// them gets the crawler's address blocked.
package polite

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"golang.org/x/time/rate"
)

type Config struct {
	// minimum gap between requests
	Interval time.Duration
	// extra random delay added on top of Interval, up to this much
	Jitter time.Duration
	// after every PauseEvery requests, sleep for PauseFor
	PauseEvery int
	PauseFor   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:   2 * time.Second,
		Jitter:     2 * time.Second,
		PauseEvery: 200,
		PauseFor:   time.Minute,
	}
}

type Limiter struct {
	config  Config
	limiter *rate.Limiter

	mu    sync.Mutex
	count int
}

func NewLimiter(config Config) *Limiter {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &Limiter{
		config:  config,
		limiter: rate.NewLimiter(rate.Every(config.Interval), 1),
	}
}

// Wait blocks until the next request is allowed to go out.
func (l *Limiter) Wait(ctx context.Context) error {
	err := l.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	if l.config.Jitter > 0 {
		ms, err := random.IntRange(0, int(l.config.Jitter.Milliseconds())+1)
		if err == nil {
			err = sleep(ctx, time.Duration(ms)*time.Millisecond)
			if err != nil {
				return err
			}
		}
	}

	if l.config.PauseEvery <= 0 {
		return nil
	}

	l.mu.Lock()
	l.count++
	pause := l.count%l.config.PauseEvery == 0
	l.mu.Unlock()

	if pause {
		slog.Info(
			"taking a breather",
			"after_requests", l.config.PauseEvery,
			"pause", l.config.PauseFor,
		)
		return sleep(ctx, l.config.PauseFor)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Attach wires the limiter into a resty client so every request
// goes through Wait first.
func (l *Limiter) Attach(client *resty.Client) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return l.Wait(req.Context())
	})
}

// ConfigureRetry sets up resty's built-in retry with exponential
// backoff. Legislature sites 500 or time out routinely during
// session deadlines.
func ConfigureRetry(client *resty.Client) {
	client.
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return res.StatusCode() >= 500 || res.StatusCode() == 429
		})
}
