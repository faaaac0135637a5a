package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "picshare_session"

// FlashCookieName is the cookie carrying a one-time notice across a redirect.
const FlashCookieName = "picshare_flash"

// GuestName is shown in place of a username for anonymous visitors.
const GuestName = "Guest"
