package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimit ограничивает общий поток запросов к сервису (token bucket)
func RateLimit(rps float64, burst int, log Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("%s %s - rate limit exceeded, request_id=%s", r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
