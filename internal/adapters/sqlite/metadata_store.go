// Package sqlite stores the trade ledger in a local wallet database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradeledger/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
create table if not exists trade_ledgers (
	key_address text primary key,
	payload     text not null,
	updated_at  timestamp not null default current_timestamp
);`

type MetadataStore struct {
	db *sql.DB
}

func Open(path string) (*MetadataStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store %q: %w", path, err)
	}
	// one writer keeps sqlite from returning SQLITE_BUSY under concurrent saves
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return &MetadataStore{db: db}, nil
}

func (s *MetadataStore) Load(ctx context.Context, key domain.MetadataKey) (*domain.Ledger, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `select payload from trade_ledgers where key_address = ?`, key.Address()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLedgerAbsent
		}
		return nil, fmt.Errorf("failed to select trade ledger: %w", err)
	}
	return domain.UnmarshalLedger(key, []byte(payload))
}

func (s *MetadataStore) Save(ctx context.Context, ledger domain.Ledger) error {
	payload, err := ledger.MarshalPayload()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		insert into trade_ledgers (key_address, payload, updated_at)
		values (?, ?, current_timestamp)
		on conflict (key_address) do update
		set payload = excluded.payload, updated_at = excluded.updated_at`,
		ledger.Key.Address(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert trade ledger: %w", err)
	}
	return nil
}

func (s *MetadataStore) Close() error {
	return s.db.Close()
}
