package handlers

import (
	"net/http"
	"time"

	"dine-insights/logging"
	"dine-insights/response"

	"github.com/sirupsen/logrus"
)

// LoggingMiddleware logs the incoming HTTP request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		logging.Info("Request processed", logrus.Fields{
			"method":     r.Method,
			"url":        r.URL.String(),
			"request_id": response.GetRequestID(r),
			"duration":   time.Since(start).String(),
		})
	})
}
