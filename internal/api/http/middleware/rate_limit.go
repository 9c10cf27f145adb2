package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/tunakleague/collabin-backend/internal/auth"
)

// CallerLimiter keeps one token bucket per profile. The least recently
// seen callers are evicted once maxCallers is reached.
type CallerLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[int64, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewCallerLimiter(perSecond float64, burst, maxCallers int) (*CallerLimiter, error) {
	cache, err := lru.New[int64, *rate.Limiter](maxCallers)
	if err != nil {
		return nil, fmt.Errorf("rate limiter cache: %w", err)
	}
	return &CallerLimiter{limiters: cache, limit: rate.Limit(perSecond), burst: burst}, nil
}

func (l *CallerLimiter) limiter(profileID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters.Get(profileID); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(profileID, lim)
	return lim
}

func (l *CallerLimiter) Allow(profileID int64) bool {
	return l.limiter(profileID).Allow()
}

// Middleware answers 429 once the caller's bucket is empty. It must run
// after the caller's profile has been resolved.
func (l *CallerLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(auth.ProfileID(c)) {
			c.Next()
			return
		}

		retry := 1
		if l.limit > 0 {
			retry = int(math.Ceil(1 / float64(l.limit)))
		}
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many swipes, slow down"})
	}
}
