package web

import (
	"encoding/base64"
	"net/http"

	"github.com/dmitrijs2005/picshare/internal/common"
)

// Flash messages shown after a redirect.
const (
	flashRegistered        = "Registration successful. Please log in."
	flashUsernameTaken     = "Username already taken."
	flashCredentialsNeeded = "Username and password are required."
	flashUnavailable       = "Service temporarily unavailable."
	flashInvalidLogin      = "Invalid login credentials"
	flashLoginRequired     = "Please log in to access this page."
	flashUploaded          = "Image uploaded successfully!"
	flashNoFile            = "No file selected."
	flashStorageDown       = "Upload failed: storage unavailable."
	flashInvalidFilename   = "Upload failed: invalid filename."

	noticeGalleryDown = "Images are temporarily unavailable."
)

// setFlash stores a one-shot message for the next page view.
func (h *Handler) setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending message, if any, and expires its cookie.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(common.FlashCookieName)
	if err != nil {
		return ""
	}
	h.clearCookie(w, common.FlashCookieName)

	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(b)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
