// Package settings exposes the key-value settings table as a typed snapshot
// cached with a TTL, so pipeline stages never query per access.
package settings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Setting keys consulted by the service.
const (
	KeyNotificationRole = "notification_role"
	KeySiteName         = "site_name"
	KeyLogoURL          = "logo_url"
)

// Snapshot is a typed view of the settings table at one point in time.
type Snapshot struct {
	NotificationRole string
	SiteName         string
	LogoURL          string
}

// System serves cached settings snapshots.
type System interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type store struct {
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	cached  *Snapshot
	expires time.Time
}

// New creates a settings store reading from the given database with the
// given cache TTL.
func New(db *sql.DB, ttl time.Duration, logger *slog.Logger) System {
	return &store{
		db:     db,
		ttl:    ttl,
		logger: logger.With("system", "settings"),
	}
}

// Snapshot returns the current settings, refreshing from the database when
// the cached copy has expired. A refresh failure with a warm cache serves
// the stale snapshot.
func (s *store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Now().Before(s.expires) {
		return s.cached, nil
	}

	snapshot, err := s.load(ctx)
	if err != nil {
		if s.cached != nil {
			s.logger.Warn("settings refresh failed, serving stale snapshot", "error", err)
			return s.cached, nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s.cached = snapshot
	s.expires = time.Now().Add(s.ttl)
	return snapshot, nil
}

func (s *store) load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT setting_key, setting_value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Snapshot{
		NotificationRole: values[KeyNotificationRole],
		SiteName:         values[KeySiteName],
		LogoURL:          values[KeyLogoURL],
	}, nil
}
