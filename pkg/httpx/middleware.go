package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	SessionCookie = "shop_session-id"
	sessionMaxAge = 60 * 60 * 48
)

type ctxKeyLog struct{}
type ctxKeySessionID struct{}

// Logger returns the request-scoped logger, or the default one outside a
// request.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKeyLog{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeySessionID{}).(string)
	return v
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID{}, id)
}

// Session makes sure every request carries a session cookie, issuing a
// fresh one when the client has none.
func Session(secure bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				sessionID = c.Value
			} else {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   sessionMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

func (r *responseRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// RequestObserver receives the outcome of every request.
type RequestObserver interface {
	ObserveRequest(route string, status int, elapsed time.Duration)
}

// Observe logs each request and reports it to obs, labelled with the
// matched route template so ids do not explode label cardinality.
func Observe(base *slog.Logger, obs RequestObserver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			route := routeTemplate(r)

			log := base.With(
				slog.String("http.req.id", requestID),
				slog.String("http.req.method", r.Method),
				slog.String("http.req.path", r.URL.Path),
			)
			if sid := SessionID(r.Context()); sid != "" {
				log = log.With(slog.String("session", sid))
			}

			rr := &responseRecorder{w: w}
			w.Header().Set("X-Request-Id", requestID)
			next.ServeHTTP(rr, r.WithContext(context.WithValue(r.Context(), ctxKeyLog{}, log)))

			elapsed := time.Since(start)
			if obs != nil {
				obs.ObserveRequest(route, rr.code(), elapsed)
			}
			log.Info("request complete",
				slog.Int("http.resp.status", rr.code()),
				slog.Int("http.resp.bytes", rr.b),
				slog.Int64("http.resp.took_ms", elapsed.Milliseconds()),
			)
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
