package ratelimit

import (
	"errors"
	"sync"
	"time"

	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/infrastructure/cache"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

// Limiter bounds generation requests per source IP per calendar day.
//
// Counters are keyed (ip, day) in the shared LRU, so yesterday's keys simply
// stop being read and age out of the cache instead of accumulating forever.
// The whole check-and-increment runs under one mutex so concurrent requests
// from the same IP cannot overrun the limit.
type Limiter struct {
	counters *cache.NamespaceLRU
	limit    int
	mu       sync.Mutex
	now      func() time.Time
}

// NewLimiter creates a limiter admitting up to limit requests per IP per
// calendar day, backed by the given counter store.
func NewLimiter(counters *cache.NamespaceLRU, limit int) *Limiter {
	return &Limiter{
		counters: counters,
		limit:    limit,
		now:      time.Now,
	}
}

// Admit checks and increments the counter for (ip, today) in one step. The
// admission that reaches the limit still passes; the next one is rejected.
func (l *Limiter) Admit(ip string) error {
	day := l.now().Format(constant.DayKeyLayout)
	key := ip + ":" + day

	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	if v, ok := l.counters.Get(constant.RateLimitNamespace, key); ok {
		count = v.(int)
	}

	if count >= l.limit {
		appLogger.Warn("Daily request limit reached", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRateLimit,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRateLimited,
				Message: constant.ErrRateLimited,
				Type:    constant.ErrTypeRateLimit,
			},
			Data: map[string]interface{}{
				constant.DataIP:    ip,
				constant.DataDay:   day,
				constant.DataCount: count,
				constant.DataLimit: l.limit,
			},
		})
		return errors.New(constant.ErrRateLimited)
	}

	l.counters.Set(constant.RateLimitNamespace, key, count+1)
	return nil
}
