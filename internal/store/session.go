package store

import (
	"crypto/subtle"
	"strings"
)

// The single account that may use the app.
const (
	Username = "netsujal"
	Password = "net@123"
)

// Session persists the logged-in username.
type Session struct {
	blobs *Store
}

func NewSession(blobs *Store) *Session {
	return &Session{blobs: blobs}
}

// Login stores username as the current session when the pair matches. The
// error never says which field was wrong.
func (s *Session) Login(username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrAuth
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(Password)) == 1
	if !userOK || !passOK {
		return ErrAuth
	}
	return s.blobs.SetBlob(SessionKey, username)
}

func (s *Session) Logout() error {
	return s.blobs.DeleteBlob(SessionKey)
}

// Restore returns the username saved by a previous Login, if any.
func (s *Session) Restore() (string, bool) {
	user, ok, err := s.blobs.GetBlob(SessionKey)
	if err != nil || !ok || user == "" {
		return "", false
	}
	return user, true
}
