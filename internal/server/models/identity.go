// Package models holds the server's domain records.
package models

// Identity is the authenticated principal resolved from a session cookie
// once per request.
type Identity struct {
	UserID    int64
	UserName  string
	SessionID string
}

// StoredObject is one uploaded file as seen in the bucket.
type StoredObject struct {
	Key string
	URL string
}
