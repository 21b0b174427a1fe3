package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Response headers the lead endpoints set and a browser UI reads back.
const (
	HeaderRequestID          = "X-Request-ID"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

var (
	corsAllowHeaders = strings.Join([]string{"Content-Type", HeaderRequestID}, ", ")
	corsAllowMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}, ",")
	// Without these a cross-origin fetch cannot see quota or export filenames.
	corsExposeHeaders = strings.Join([]string{
		HeaderRequestID, HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRateLimitReset,
		"Retry-After", "Content-Disposition",
	}, ", ")
)

type ctxKey struct{}

type Middleware func(http.Handler) http.Handler

func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// Cors lets the lead UI call the engine from another origin. Preflights are
// answered here and never reach the rate limiter.
func Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		}
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RequestID adopts the caller's X-Request-ID when it is a plain token and
// mints a UUID otherwise, so ids are safe to print in logfmt lines.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

// Recover turns a handler panic into the standard 500 body. An aborted
// handler is re-raised so net/http can drop the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			log.Printf("level=error msg=\"panic\" request_id=%s method=%s path=%s err=%v",
				RequestIDFrom(r.Context()), r.Method, r.URL.Path, rec)
			WriteError(w, r, http.StatusInternalServerError, "internal_error", MsgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}

// responseMeter records what a handler sent, for the access line.
type responseMeter struct {
	http.ResponseWriter
	code  int
	bytes int
}

func (m *responseMeter) WriteHeader(code int) {
	if m.code == 0 {
		m.code = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *responseMeter) Write(b []byte) (int, error) {
	if m.code == 0 {
		m.code = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(b)
	m.bytes += n
	return n, err
}

// Flush keeps /events streaming through AccessLog.
func (m *responseMeter) Flush() {
	if f, ok := m.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (m *responseMeter) Unwrap() http.ResponseWriter { return m.ResponseWriter }

// status is what the client saw: a handler that wrote nothing got a 200.
func (m *responseMeter) status() int {
	if m.code == 0 {
		return http.StatusOK
	}
	return m.code
}

// AccessLog writes one logfmt line per request, levelled by status class
// so throttled and failed lead runs stand out.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m := &responseMeter{ResponseWriter: w}
		next.ServeHTTP(m, r)

		code := m.status()
		level := "info"
		switch {
		case code >= 500:
			level = "error"
		case code >= 400:
			level = "warn"
		}
		log.Printf("level=%s msg=\"http\" request_id=%s client=%s method=%s path=%s status=%d bytes=%d dur_ms=%d",
			level, RequestIDFrom(r.Context()), ClientID(r), r.Method, r.URL.Path, code, m.bytes, time.Since(start).Milliseconds())
	})
}
