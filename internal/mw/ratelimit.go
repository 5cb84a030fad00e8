package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor 记录单个来源的令牌桶及其最近活跃时间。
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore 按来源维护令牌桶，闲置条目由后台定期回收。
type limiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	done     chan struct{}
}

func newLimiterStore(limit rate.Limit, burst int, idleTTL time.Duration) *limiterStore {
	s := &limiterStore{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		done:     make(chan struct{}),
	}
	go s.reap()
	return s
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()
	lim := v.limiter
	s.mu.Unlock()
	return lim.Allow()
}

func (s *limiterStore) reap() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, v := range s.visitors {
				if now.Sub(v.lastSeen) > s.idleTTL {
					delete(s.visitors, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close 停止回收 goroutine。
func (s *limiterStore) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// RateLimit 返回按客户端 IP 和路由限速的中间件，超出配额时返回
// 429 并附带 Retry-After 头。
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	store := newLimiterStore(limit, burst, 3*time.Minute)
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if !store.allow(c.ClientIP() + "|" + path) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
