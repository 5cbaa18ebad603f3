package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"privacy-cargo-tracking/internal/core/cache"
	"privacy-cargo-tracking/internal/features/cargo/domain"
)

const (
	recordKeyPrefix = "cargo:record:"
	ownerKeyPrefix  = "cargo:owner:"
)

// RedisShipmentRepository implements ports.ShipmentRepository on the
// shared storage adapter. Layout: one primary table of id -> record JSON,
// plus an append-only owner index of address -> [ids]. The index is a
// convenience projection; the primary table is the source of truth and
// every index entry must resolve against it.
type RedisShipmentRepository struct {
	store cache.Store
}

// NewRedisShipmentRepository creates a new RedisShipmentRepository.
func NewRedisShipmentRepository(s cache.Store) *RedisShipmentRepository {
	return &RedisShipmentRepository{
		store: s,
	}
}

// Create stores a new record and indexes it under its owner. The SetNX
// guard makes id uniqueness atomic: a taken id fails without touching
// either table.
func (r *RedisShipmentRepository) Create(ctx context.Context, record *domain.ShipmentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	ok, err := r.store.SetNX(ctx, recordKeyPrefix+record.ID, data)
	if err != nil {
		return fmt.Errorf("failed to store shipment: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, record.ID)
	}

	if err := r.store.RPush(ctx, ownerKeyPrefix+record.Owner, record.ID); err != nil {
		return fmt.Errorf("failed to index shipment owner: %w", err)
	}

	return nil
}

// Get retrieves a record by id.
func (r *RedisShipmentRepository) Get(ctx context.Context, id string) (*domain.ShipmentRecord, error) {
	data, err := r.store.Get(ctx, recordKeyPrefix+id)
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	var record domain.ShipmentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
	}

	return &record, nil
}

// Update overwrites an existing record. The id must already be stored;
// update never creates and never re-indexes (the owner is immutable).
func (r *RedisShipmentRepository) Update(ctx context.Context, record *domain.ShipmentRecord) error {
	if _, err := r.Get(ctx, record.ID); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	if err := r.store.Set(ctx, recordKeyPrefix+record.ID, data, 0); err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}

	return nil
}

// OwnedIDs returns the owner index for an address.
func (r *RedisShipmentRepository) OwnedIDs(ctx context.Context, owner string) ([]string, error) {
	ids, err := r.store.LRange(ctx, ownerKeyPrefix+owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner index: %w", err)
	}
	return ids, nil
}
