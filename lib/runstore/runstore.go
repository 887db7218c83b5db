// Package runstore remembers which bills a previous run already
// scraped so an interrupted crawl can resume where it stopped.
package runstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "embed"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var tracer = otel.Tracer("legiscrape.lib.runstore")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the seen-bill database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init run store schema: %w", err)
	}
	return &Store{db: db}, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Seen reports whether the bill was recorded by a previous run.
func (s *Store) Seen(ctx context.Context, legislature, session, billno string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Seen")
	defer span.End()

	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM seen_bill WHERE legislature = ? AND session = ? AND billno = ?`,
		legislature, session, billno,
	)
	var count int
	err := row.Scan(&count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return count > 0, nil
}

func (s *Store) MarkSeen(ctx context.Context, legislature, session, billno string) error {
	ctx, span := tracer.Start(ctx, "MarkSeen")
	defer span.End()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO seen_bill (legislature, session, billno, scraped_at) VALUES (?, ?, ?, ?)`,
		legislature, session, billno, time.Now().Unix(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Forget drops every record for a legislature/session pair, forcing
// the next run to rescrape it from scratch.
func (s *Store) Forget(ctx context.Context, legislature, session string) error {
	ctx, span := tracer.Start(ctx, "Forget")
	defer span.End()

	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM seen_bill WHERE legislature = ? AND session = ?`,
		legislature, session,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Count returns how many bills are recorded for a legislature/session.
func (s *Store) Count(ctx context.Context, legislature, session string) (int, error) {
	ctx, span := tracer.Start(ctx, "Count")
	defer span.End()

	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM seen_bill WHERE legislature = ? AND session = ?`,
		legislature, session,
	)
	var count int
	err := row.Scan(&count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return count, nil
}
