// Package store is the typed query surface over the ServerStatus table.
// It is stateless: every call re-reads or re-writes the database.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/models"
)

// ErrNotFound means a by-name lookup matched no row. Servers are
// provisioned out-of-band, so this usually signals a typo or a repo the
// relay does not track.
var ErrNotFound = errors.New("server not found")

// ErrAmbiguous means a by-name lookup matched more than one row. Name is
// the primary key, so this only happens when the table was provisioned
// wrongly; it is surfaced rather than silently using the first row.
var ErrAmbiguous = errors.New("server name matched multiple rows")

// Store wraps a database.DB with the relay's queries. All statements are
// parameterized; no untrusted input reaches SQL text.
type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

// GetStatus returns the lock state for name, enforcing the exactly-one
// contract: ErrNotFound on zero rows, ErrAmbiguous on more than one.
func (s *Store) GetStatus(ctx context.Context, name string) (models.ServerStatus, error) {
	var rows []models.ServerStatus
	err := s.db.Select(ctx, &rows,
		`SELECT Name, IsOpen, LockHolder, ChannelID FROM ServerStatus WHERE Name = ?`, name)
	if err != nil {
		return models.ServerStatus{}, fmt.Errorf("querying status of %q: %w", name, err)
	}
	return exactlyOne(rows, name)
}

// GetStatusAndChannel is GetStatus for callers that also need the
// subscriber channel; it shares the same row and contract.
func (s *Store) GetStatusAndChannel(ctx context.Context, name string) (models.ServerStatus, error) {
	return s.GetStatus(ctx, name)
}

// SubscribedServers returns the names of every server whose notifications
// go to channelID. The result may be empty; that is not an error.
func (s *Store) SubscribedServers(ctx context.Context, channelID string) ([]string, error) {
	var rows []struct {
		Name string `db:"Name"`
	}
	err := s.db.Select(ctx, &rows,
		`SELECT Name FROM ServerStatus WHERE ChannelID = ?`, channelID)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions of channel %s: %w", channelID, err)
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, nil
}

// OpenServers returns every open server that has a subscriber, for the
// reminder digest.
func (s *Store) OpenServers(ctx context.Context) ([]models.ServerStatus, error) {
	var rows []models.ServerStatus
	err := s.db.Select(ctx, &rows,
		`SELECT Name, IsOpen, LockHolder, ChannelID FROM ServerStatus
		 WHERE IsOpen = 1 AND ChannelID IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("querying open servers: %w", err)
	}
	return rows, nil
}

// AllServers lists every tracked server, ordered by name.
func (s *Store) AllServers(ctx context.Context) ([]models.ServerStatus, error) {
	var rows []models.ServerStatus
	err := s.db.Select(ctx, &rows,
		`SELECT Name, IsOpen, LockHolder, ChannelID FROM ServerStatus ORDER BY Name`)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}
	return rows, nil
}

// SetOpen marks name as open and records the lock holder.
func (s *Store) SetOpen(ctx context.Context, name, holder string) error {
	err := s.db.Exec(ctx,
		`UPDATE ServerStatus SET IsOpen = 1, LockHolder = ? WHERE Name = ?`, holder, name)
	if err != nil {
		return fmt.Errorf("opening %q: %w", name, err)
	}
	return nil
}

// SetClosed marks name as closed and clears the lock holder.
func (s *Store) SetClosed(ctx context.Context, name string) error {
	err := s.db.Exec(ctx,
		`UPDATE ServerStatus SET IsOpen = 0, LockHolder = NULL WHERE Name = ?`, name)
	if err != nil {
		return fmt.Errorf("closing %q: %w", name, err)
	}
	return nil
}

// SetSubscription points name's notifications at channelID. The row must
// already exist; the exactly-one contract applies.
func (s *Store) SetSubscription(ctx context.Context, name, channelID string) error {
	if _, err := s.GetStatus(ctx, name); err != nil {
		return err
	}
	err := s.db.Exec(ctx,
		`UPDATE ServerStatus SET ChannelID = ? WHERE Name = ?`, channelID, name)
	if err != nil {
		return fmt.Errorf("subscribing channel %s to %q: %w", channelID, name, err)
	}
	return nil
}

func exactlyOne(rows []models.ServerStatus, name string) (models.ServerStatus, error) {
	switch len(rows) {
	case 1:
		return rows[0], nil
	case 0:
		return models.ServerStatus{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	default:
		return models.ServerStatus{}, fmt.Errorf("%w: %q matched %d rows", ErrAmbiguous, name, len(rows))
	}
}
