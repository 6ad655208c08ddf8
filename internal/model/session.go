package model

import "time"

// SessionLifetime is fixed from the moment of login
const SessionLifetime = 24 * time.Hour

// Session is the authenticated principal of one storage scope
type Session struct {
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the session is no longer readable at t
func (s *Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// SessionProfile is the persisted "user" field
type SessionProfile struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// SessionRecord is the persisted layout of one scope: token, user profile and expiry.
// Profile holds raw JSON and is decoded by the session store.
type SessionRecord struct {
	Scope     string    `gorm:"type:varchar(64);primaryKey" json:"-"`
	Token     string    `gorm:"type:text;not null" json:"token"`
	Profile   string    `gorm:"column:user_profile;type:text;not null" json:"user"`
	ExpiresAt int64     `gorm:"column:expires_at_ms;not null;index" json:"expiry"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM
func (SessionRecord) TableName() string {
	return "console_sessions"
}
