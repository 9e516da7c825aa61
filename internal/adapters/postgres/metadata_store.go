package postgres

import (
	"context"
	"errors"
	"fmt"

	"tradeledger/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MetadataStore keeps one serialized trade ledger per key address.
type MetadataStore struct {
	pool *pgxpool.Pool
}

func (s *MetadataStore) Load(ctx context.Context, key domain.MetadataKey) (*domain.Ledger, error) {
	const q = `select payload from trade_ledgers where key_address = $1;`

	var payload []byte
	if err := s.pool.QueryRow(ctx, q, key.Address()).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerAbsent
		}
		return nil, fmt.Errorf("failed to select trade ledger: %w", err)
	}
	return domain.UnmarshalLedger(key, payload)
}

func (s *MetadataStore) Save(ctx context.Context, ledger domain.Ledger) error {
	const q = `
		insert into trade_ledgers (key_address, payload, updated_at)
		values ($1, $2, now())
		on conflict (key_address) do update
		set payload = excluded.payload, updated_at = excluded.updated_at;
	`

	payload, err := ledger.MarshalPayload()
	if err != nil {
		return err
	}
	if _, err = s.pool.Exec(ctx, q, ledger.Key.Address(), payload); err != nil {
		return fmt.Errorf("failed to upsert trade ledger: %w", err)
	}
	return nil
}

func NewMetadataStore(pool *pgxpool.Pool) *MetadataStore {
	return &MetadataStore{pool: pool}
}
