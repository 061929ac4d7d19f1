package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

// GuardConfig sets the per-client budgets enforced by ClientGuard.
type GuardConfig struct {
	Window            time.Duration
	RequestBudget     int // any route, per window
	PullBudget        int // pull and batch routes, per window
	FailedAuthAlertAt int
	MaxTrackedClients int
}

// DefaultGuardConfig returns the budgets used by NewServer.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Window:            DefaultGuardWindow,
		RequestBudget:     DefaultRequestBudget,
		PullBudget:        DefaultPullBudget,
		FailedAuthAlertAt: DefaultFailedAuthAlertAt,
		MaxTrackedClients: DefaultMaxTrackedClients,
	}
}

type clientWindow struct {
	started    time.Time
	requests   int
	pulls      int
	failedAuth int
}

// ClientGuard counts requests, pulls and failed authentications per client IP
// over a fixed window. Idle clients fall out of the LRU after one window.
type ClientGuard struct {
	cfg     GuardConfig
	mu      sync.Mutex
	clients *expirable.LRU[string, *clientWindow]
	now     func() time.Time
}

// NewClientGuard creates a guard with the given budgets
func NewClientGuard(cfg GuardConfig) *ClientGuard {
	return &ClientGuard{
		cfg:     cfg,
		clients: expirable.NewLRU[string, *clientWindow](cfg.MaxTrackedClients, nil, cfg.Window),
		now:     time.Now,
	}
}

// window returns the live counters for ip. Caller must hold mu.
func (g *ClientGuard) window(ip string) *clientWindow {
	now := g.now()
	if w, ok := g.clients.Get(ip); ok && now.Sub(w.started) < g.cfg.Window {
		return w
	}
	w := &clientWindow{started: now}
	g.clients.Add(ip, w)
	return w
}

// RecordFailedAuth counts a rejected API key and alerts once the threshold is reached
func (g *ClientGuard) RecordFailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.window(ip)
	w.failedAuth++
	if w.failedAuth >= g.cfg.FailedAuthAlertAt {
		logger.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
	return w.failedAuth
}

// Allow counts one request and reports whether it fits the client's budgets.
// Rejected pulls do not consume pull budget.
func (g *ClientGuard) Allow(ip string, pull bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.window(ip)
	w.requests++
	if w.requests > g.cfg.RequestBudget {
		if w.requests%100 == 0 {
			logger.Warn(SecurityAlertHighRate, "ip", ip, "count", w.requests)
		}
		return false
	}
	if !pull {
		return true
	}
	if w.pulls >= g.cfg.PullBudget {
		logger.Warn(SecurityAlertPullBudget, "ip", ip, "pulls", w.pulls)
		return false
	}
	w.pulls++
	return true
}

func (g *ClientGuard) retryAfter() string {
	return strconv.Itoa(int(g.cfg.Window.Seconds()))
}

// AuthMiddleware rejects requests without the API key, except on public paths
func AuthMiddleware(apiKey string, proxies ProxySet, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := proxies.ClientIP(r)
				guard.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware enforces the guard's budgets. Pull routes count against both.
func RateLimitMiddleware(proxies ProxySet, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pull := r.Method == http.MethodPost && isPullPath(r.URL.Path)
			if !guard.Allow(proxies.ClientIP(r), pull) {
				w.Header().Set(HeaderRetryAfter, guard.retryAfter())
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies. Pull requests are tiny.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets hardening headers. API responses carry
// per-player pull results and must never be cached.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderReferrerPolicy, HeaderValueNoReferrer)
			if strings.HasPrefix(r.URL.Path, RoutePrefixAPI) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProxySet holds the addresses allowed to set X-Forwarded-For.
type ProxySet map[netip.Addr]struct{}

// NewProxySet parses proxy addresses, skipping entries that are not IPs
func NewProxySet(addrs []string) ProxySet {
	set := make(ProxySet, len(addrs))
	for _, a := range addrs {
		ip, err := netip.ParseAddr(strings.TrimSpace(a))
		if err != nil {
			logger.Warn(LogMsgInvalidTrustedProxy, "proxy", a)
			continue
		}
		set[ip.Unmap()] = struct{}{}
	}
	return set
}

// ClientIP returns the connecting address, or the last X-Forwarded-For hop
// when the connection comes from a trusted proxy.
func (p ProxySet) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	remote, err := netip.ParseAddr(host)
	if err != nil {
		return host
	}
	remote = remote.Unmap()

	if _, trusted := p[remote]; !trusted {
		return remote.String()
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote.String()
	}
	hops := strings.Split(forwarded, ",")
	last, err := netip.ParseAddr(strings.TrimSpace(hops[len(hops)-1]))
	if err != nil {
		return remote.String()
	}
	return last.Unmap().String()
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func isPullPath(path string) bool {
	return path == RoutePull || path == RouteBatch
}
