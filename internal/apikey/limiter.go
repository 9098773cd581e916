package apikey

import (
	"container/list"
	"sync"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"golang.org/x/time/rate"
)

type RateLimitObserver interface {
	ObserveRateLimited()
}

// Limiter keeps one token bucket per api key. Once maxKeys buckets exist, the
// least recently used one is dropped to make room.
type Limiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	maxKeys  int
	buckets  map[string]*list.Element
	recent   *list.List
	observer RateLimitObserver
}

type bucket struct {
	key     string
	limiter *rate.Limiter
}

func NewLimiter(cfg *config.APIKey, observer RateLimitObserver) *Limiter {
	return &Limiter{
		limit:    rate.Limit(cfg.RateLimit),
		burst:    cfg.Burst,
		maxKeys:  cfg.LimiterMaxKeys,
		buckets:  make(map[string]*list.Element),
		recent:   list.New(),
		observer: observer,
	}
}

// Allow takes a token for key. When none is available it returns false and
// how long the caller should wait before retrying.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	res := l.bucket(key).Reserve()
	if !res.OK() {
		l.observe()
		return false, time.Second
	}

	delay := res.Delay()
	if delay == 0 {
		return true, 0
	}

	res.Cancel()
	l.observe()
	return false, delay
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if el, ok := l.buckets[key]; ok {
		l.recent.MoveToFront(el)
		return el.Value.(*bucket).limiter
	}

	if l.maxKeys > 0 && l.recent.Len() >= l.maxKeys {
		oldest := l.recent.Back()
		l.recent.Remove(oldest)
		delete(l.buckets, oldest.Value.(*bucket).key)
	}

	b := &bucket{key: key, limiter: rate.NewLimiter(l.limit, l.burst)}
	l.buckets[key] = l.recent.PushFront(b)
	return b.limiter
}

func (l *Limiter) observe() {
	if l.observer != nil {
		l.observer.ObserveRateLimited()
	}
}
