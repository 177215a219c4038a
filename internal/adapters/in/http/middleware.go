package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"golang.org/x/time/rate"
)

const basicAuthUserKey = "basicAuthUser"

func (c *RosterController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !c.isKnownClient(username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set(basicAuthUserKey, username)
		ctx.Next()
	}
}

// Проверяются все клиенты без раннего выхода
func (c *RosterController) isKnownClient(username, password string) bool {
	matched := 0
	for _, client := range c.cfg.Auth.BasicClients {
		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username))
		passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password))
		matched |= userMatch & passMatch
	}
	return matched == 1
}

// corsMiddleware nil, если список источников пуст
func (c *RosterController) corsMiddleware() gin.HandlerFunc {
	origins := make([]string, 0, len(c.cfg.HTTP.CorsAllowOrigins))
	allowAll := false
	for _, origin := range c.cfg.HTTP.CorsAllowOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			allowAll = true
		default:
			origins = append(origins, origin)
		}
	}
	if !allowAll && len(origins) == 0 {
		return nil
	}

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Accept-Language"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}

// clientLimiters лимитер на каждого basic-auth клиента
type clientLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	if rps <= 0 {
		return nil
	}
	return &clientLimiters{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *clientLimiters) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[client]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[client] = limiter
	}
	return limiter
}

// rateLimit ставится после basicAuth, ключ - имя клиента
func (c *RosterController) rateLimit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c.limiters == nil {
			ctx.Next()
			return
		}

		client := ctx.GetString(basicAuthUserKey)
		if client == "" {
			client = ctx.ClientIP()
		}

		if !c.limiters.get(client).Allow() {
			c.logger.Warn("http.request.rate_limited", out.LogFields{
				"client": client,
				"path":   ctx.FullPath(),
			})
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		ctx.Next()
	}
}
