package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

const claimsKey = "authClaims"

// RequireAuth resolves the session token from the Authorization header or the
// session cookie and stores the parsed claims in the request context.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token = strings.TrimPrefix(ah, "Bearer ")
		}
		if token == "" {
			if v, err := c.Cookie("session"); err == nil {
				token = v
			}
		}
		if token == "" {
			respondStatus(c, http.StatusUnauthorized, "login required")
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			respondStatus(c, http.StatusUnauthorized, "invalid session")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin gates mutating endpoints. Runs after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			respondStatus(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *service.TokenClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.TokenClaims)
	return claims
}

// RateLimiter caps requests per client IP per minute; each request's slot is
// released one minute after it arrived.
func RateLimiter(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu       sync.Mutex
		requests = make(map[string]int)
	)
	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		if requests[ip] >= perMinute {
			mu.Unlock()
			respondStatus(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		requests[ip]++
		mu.Unlock()

		time.AfterFunc(time.Minute, func() {
			mu.Lock()
			defer mu.Unlock()
			if requests[ip] <= 1 {
				delete(requests, ip)
			} else {
				requests[ip]--
			}
		})

		c.Next()
	}
}
