package persistence

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"slbstore/internal/models"
	"slbstore/internal/providers"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// sqliteStore keeps the image in a single SQLite database file: one meta row
// plus a subscriptions table. Every Save rewrites both inside one transaction,
// so the on-disk state is always a complete image.
type sqliteStore struct {
	db     *sql.DB
	logger providers.Logger
}

func openSQLite(path string, logger providers.Logger) (*sqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	s := &sqliteStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite image: %w", err)
	}
	return s, nil
}

func (s *sqliteStore) migrate() error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.Exec(string(b))
	return err
}

func (s *sqliteStore) Save(img *models.Image) error {
	snap, err := json.Marshal(img.PreviousSchedule)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM subscriptions`); err != nil {
		return err
	}
	for id, opts := range img.Subscriptions {
		_, err = tx.Exec(
			`INSERT INTO subscriptions(channel_id, notification_type, launch_mentions) VALUES(?,?,?)`,
			id, int(opts.NotificationType), opts.LaunchMentions,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(
		`INSERT INTO meta(id, version, notification_sent, schedule_json) VALUES(1,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET
		   version=excluded.version,
		   notification_sent=excluded.notification_sent,
		   schedule_json=excluded.schedule_json`,
		img.Version, boolToInt(img.NotificationSent), string(snap),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *sqliteStore) Load() (*models.Image, error) {
	var (
		version  int
		sent     int
		snapJSON string
	)
	err := s.db.QueryRow(`SELECT version, notification_sent, schedule_json FROM meta WHERE id = 1`).
		Scan(&version, &sent, &snapJSON)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Infof(providers.TypePersist, "No persisted image in database yet")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if version > models.ImageVersion {
		return nil, fmt.Errorf("%w: unsupported image version %d", ErrCorruptImage, version)
	}

	img := models.NewImage()
	img.NotificationSent = sent != 0
	if err := json.Unmarshal([]byte(snapJSON), &img.PreviousSchedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	img.Normalize()

	rows, err := s.db.Query(`SELECT channel_id, notification_type, launch_mentions FROM subscriptions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id       int64
			notif    int
			mentions string
		)
		if err := rows.Scan(&id, &notif, &mentions); err != nil {
			return nil, err
		}
		img.Subscriptions[id] = models.SubscriptionOptions{
			NotificationType: models.NotificationType(notif),
			LaunchMentions:   mentions,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
