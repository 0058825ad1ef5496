package models

import "database/sql"

// ServerStatus is one tracked resource and its lock state.
// Rows are provisioned out-of-band; the relay only updates
// IsOpen, LockHolder and ChannelID.
type ServerStatus struct {
	Name       string         `json:"name"        db:"Name"`
	IsOpen     bool           `json:"is_open"     db:"IsOpen"`
	LockHolder sql.NullString `json:"lock_holder" db:"LockHolder"`
	ChannelID  sql.NullString `json:"channel_id"  db:"ChannelID"`
}

// Holder returns the lock holder, or "" when the server is closed.
func (s ServerStatus) Holder() string {
	if s.LockHolder.Valid {
		return s.LockHolder.String
	}
	return ""
}

// Channel returns the subscribed channel id, or "" when unsubscribed.
func (s ServerStatus) Channel() string {
	if s.ChannelID.Valid {
		return s.ChannelID.String
	}
	return ""
}
