package common

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

type contextKey string

// UserIDKey is the request-context key carrying the resolved caller identity.
const UserIDKey contextKey = "user_id"

// CallerID pulls the resolved user id out of a request context.
func CallerID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return Anonymous
}

// AuthMiddleware resolves the bearer token and injects the caller identity
// into the request context. All authentication failures collapse into a
// single unauthorized response.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer := ""
		if auth := r.Header.Get("Authorization"); auth != "" {
			parts := strings.Fields(auth)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				bearer = parts[1]
			}
		}
		if bearer == "" {
			// websocket-style clients pass the bearer as a query parameter
			bearer = r.URL.Query().Get("token")
		}

		userID := Resolve(bearer)
		if userID == Anonymous {
			WriteError(w, E(KindUnauthorized, "authentication required"))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORSMiddleware adds CORS headers.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs HTTP requests.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// WriteJSON writes a success body.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// WriteError writes the error taxonomy body. Internal errors are logged with
// a correlation id and returned without detail.
func WriteError(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	message := err.Error()
	if kind == KindInternal {
		correlationID := time.Now().UnixNano()
		log.Printf("internal error [%d]: %v", correlationID, err)
		message = "internal error"
	}

	WriteJSON(w, HTTPStatus(kind), map[string]interface{}{
		"success": false,
		"error":   message,
		"code":    string(kind),
	})
}
