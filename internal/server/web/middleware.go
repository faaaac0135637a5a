package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/logging"
	"github.com/dmitrijs2005/picshare/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext returns the identity LoadSession resolved for this
// request, or nil for guests.
func IdentityFromContext(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}

// CurrentUser returns the authenticated username or common.GuestName.
func CurrentUser(ctx context.Context) string {
	if id := IdentityFromContext(ctx); id != nil {
		return id.UserName
	}
	return common.GuestName
}

// RequestLogger logs one line per request with chi's request id.
func RequestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Info(r.Context(), "http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// LoadSession resolves the session cookie once and puts the identity on the
// request context. Cookies that no longer name a live session are cleared;
// when the store is unreachable the request proceeds as a guest.
func (h *Handler) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(common.SessionCookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := h.users.ResolveSession(r.Context(), c.Value)
		if err != nil {
			if errors.Is(err, common.ErrUnauthenticated) {
				h.clearCookie(w, common.SessionCookieName)
			} else {
				h.log.Warn(r.Context(), "session lookup failed", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated redirects guests to the login page.
func (h *Handler) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == nil {
			h.setFlash(w, flashLoginRequired)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
