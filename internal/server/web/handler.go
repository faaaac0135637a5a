// Package web is the HTTP surface of PicShare: a chi router serving HTML
// pages, the session guard middleware and flash messages.
package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/logging"
	"github.com/dmitrijs2005/picshare/internal/server/config"
	"github.com/dmitrijs2005/picshare/internal/server/models"
)

// Authenticator is the account and session contract the handlers need.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*models.Identity, error)
}

type Uploader interface {
	Upload(ctx context.Context, filename string, src io.Reader) (string, error)
}

type GalleryBuilder interface {
	BuildGallery(ctx context.Context) ([]models.StoredObject, error)
}

// Handler serves every route.
type Handler struct {
	users   Authenticator
	uploads Uploader
	gallery GalleryBuilder
	log     logging.Logger

	sessionTTL      time.Duration
	cookieSecure    bool
	maxUploadMemory int64
}

func NewHandler(users Authenticator, uploads Uploader, gallery GalleryBuilder, cfg *config.Config, log logging.Logger) *Handler {
	return &Handler{
		users:           users,
		uploads:         uploads,
		gallery:         gallery,
		log:             log,
		sessionTTL:      cfg.SessionValidityDuration,
		cookieSecure:    cfg.CookieSecure,
		maxUploadMemory: cfg.MaxUploadMemory,
	}
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string) pageData {
	return pageData{
		Title:         title,
		UserName:      CurrentUser(r.Context()),
		Authenticated: IdentityFromContext(r.Context()) != nil,
		Flash:         h.popFlash(w, r),
	}
}

// Home renders the gallery. A storage failure still renders the page,
// with no images and a notice.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Home")

	images, err := h.gallery.BuildGallery(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "gallery listing failed", "error", err)
		data.Notice = noticeGalleryDown
		images = []models.StoredObject{}
	}
	data.Images = images

	h.render(w, r, pageHome, data)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageDashboard, h.page(w, r, "Dashboard"))
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageRegister, h.page(w, r, "Register"))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if _, err := h.users.Register(r.Context(), username, password); err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateUsername):
			h.log.Info(r.Context(), "registration rejected: username taken", "username", username)
			h.setFlash(w, flashUsernameTaken)
		case errors.Is(err, common.ErrValidation):
			h.setFlash(w, flashCredentialsNeeded)
		default:
			h.log.Error(r.Context(), "registration failed", "username", username, "error", err)
			h.setFlash(w, flashUnavailable)
		}
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	h.log.Info(r.Context(), "user registered", "username", username)
	h.setFlash(w, flashRegistered)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageLogin, h.page(w, r, "Login"))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			h.log.Info(r.Context(), "login rejected", "username", username)
			h.setFlash(w, flashInvalidLogin)
		} else {
			h.log.Error(r.Context(), "login failed", "username", username, "error", err)
			h.setFlash(w, flashUnavailable)
		}
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.log.Info(r.Context(), "user logged in", "username", username)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout is always allowed; a guest simply lands on the home page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		if err := h.users.Logout(r.Context(), c.Value); err != nil {
			h.log.Warn(r.Context(), "session not revoked", "error", err)
		}
	}
	h.clearCookie(w, common.SessionCookieName)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Upload always redirects home with a flash describing the outcome.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	h.setFlash(w, h.upload(r))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) upload(r *http.Request) string {
	if err := r.ParseMultipartForm(h.maxUploadMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			h.log.Warn(r.Context(), "reading upload form failed", "error", err)
		}
		return flashNoFile
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return flashNoFile
	}
	defer file.Close()

	key, err := h.uploads.Upload(r.Context(), header.Filename, file)
	switch {
	case err == nil:
		h.log.Info(r.Context(), "image uploaded", "key", key, "username", CurrentUser(r.Context()))
		return flashUploaded
	case errors.Is(err, common.ErrNoFileSelected):
		return flashNoFile
	case errors.Is(err, common.ErrValidation):
		h.log.Info(r.Context(), "upload rejected", "filename", header.Filename)
		return flashInvalidFilename
	default:
		h.log.Error(r.Context(), "upload failed", "filename", header.Filename, "error", err)
		return flashStorageDown
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
