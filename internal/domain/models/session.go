package models

import "time"

// Session is the server-side record behind a signed token
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	IsRevoked    bool      `json:"is_revoked"`
	LastActivity time.Time `json:"last_activity"`
	CreatedDate  time.Time `json:"created_date"`
}

// IsActive reports whether the session can still authenticate requests at now
func (s *Session) IsActive(now time.Time) bool {
	return !s.IsRevoked && now.Before(s.ExpiresAt)
}
