package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter decide si un usuario puede hacer otra prediccion.
type RateLimiter interface {
	Allow(ctx context.Context, userID string) bool
}

const (
	predictLimitPrefix   = "predict:rl:"
	redisCallTimeout     = 500 * time.Millisecond
	defaultPredictWindow = time.Hour
)

// Cuenta en una ventana fija; la clave ya trae el indice de ventana y solo
// necesita vivir lo que dura esa ventana.
const predictWindowScript = `
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// windowLimiter limita a max predicciones por ventana fija en Redis.
// Si Redis falla deja pasar la peticion.
type windowLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	now    func() time.Time
}

// NewRateLimiter usa Redis cuando hay cliente y un limitador en memoria si no.
func NewRateLimiter(client *redis.Client, window time.Duration, max int) RateLimiter {
	window, max = limiterBounds(window, max)
	if client == nil {
		return NewMemoryRateLimiter(window, max)
	}
	return &windowLimiter{client: client, window: window, max: max, now: time.Now}
}

func limiterBounds(window time.Duration, max int) (time.Duration, int) {
	if window < time.Millisecond {
		window = defaultPredictWindow
	}
	if max <= 0 {
		max = 1
	}
	return window, max
}

// key arma predict:rl:{usuario}:{ventana}. Vacio si el usuario es vacio.
func (l *windowLimiter) key(userID string, at time.Time) string {
	user := strings.ToLower(strings.TrimSpace(userID))
	if user == "" {
		return ""
	}
	bucket := at.UnixMilli() / l.window.Milliseconds()
	return predictLimitPrefix + user + ":" + strconv.FormatInt(bucket, 10)
}

func (l *windowLimiter) Allow(ctx context.Context, userID string) bool {
	key := l.key(userID, l.now())
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	n, err := l.client.Eval(ctx, predictWindowScript, []string{key}, l.window.Milliseconds()).Int()
	if err != nil {
		return true
	}
	return n <= l.max
}

// memoryRateLimiter reparte max eventos por ventana con un token bucket por usuario.
type memoryRateLimiter struct {
	mu       sync.Mutex
	every    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewMemoryRateLimiter(window time.Duration, max int) RateLimiter {
	window, max = limiterBounds(window, max)
	return &memoryRateLimiter{
		every:    rate.Every(window / time.Duration(max)),
		burst:    max,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

func (l *memoryRateLimiter) Allow(_ context.Context, userID string) bool {
	user := strings.ToLower(strings.TrimSpace(userID))
	if user == "" {
		return false
	}
	l.mu.Lock()
	lim, ok := l.limiters[user]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[user] = lim
	}
	l.mu.Unlock()
	return lim.AllowN(l.now(), 1)
}
