package ports

import (
	"context"

	"privacy-cargo-tracking/internal/features/cargo/domain"
)

// CargoService defines the primary port for shipment operations.
type CargoService interface {
	// Create stores a new shipment with encrypted confidential fields.
	Create(ctx context.Context, caller, id, destination string, priority uint64, fragile bool, value uint64) (*domain.ShipmentRecord, error)
	// UpdateStatus overwrites status/location. Owner only.
	UpdateStatus(ctx context.Context, caller, id, status, location string) error
	// UpdatePrivacy sets visibility and replaces the authorized viewer.
	// Owner only. An empty viewer clears the current one.
	UpdatePrivacy(ctx context.Context, caller, id string, isPublic bool, viewer string) error
	// AuthorizeViewer grants the viewer ciphertext access and makes it the
	// current authorized viewer. Owner only.
	AuthorizeViewer(ctx context.Context, caller, id, viewer string) error
	// ReadField returns one field of the record, gated by the field's kind.
	ReadField(ctx context.Context, caller, id string, field domain.Field) (string, error)
	// ListOwned returns the ids of shipments created by the caller.
	ListOwned(ctx context.Context, caller string) ([]string, error)
}

// ShipmentRepository defines the secondary port for shipment storage.
type ShipmentRepository interface {
	// Create stores a record iff the id is unused, and appends the id to
	// the owner's index. Returns domain.ErrAlreadyExists on a taken id.
	Create(ctx context.Context, record *domain.ShipmentRecord) error
	// Get returns the record or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.ShipmentRecord, error)
	// Update overwrites an existing record in place.
	Update(ctx context.Context, record *domain.ShipmentRecord) error
	// OwnedIDs returns the owner index for an address (empty if none).
	OwnedIDs(ctx context.Context, owner string) ([]string, error)
}

// Encryptor defines the secondary port to the encrypted-value engine.
// Grants are additive and irrevocable; there is deliberately no revoke.
type Encryptor interface {
	EncryptSmall(ctx context.Context, value uint64) (string, error)
	EncryptBool(ctx context.Context, value bool) (string, error)
	EncryptUint64(ctx context.Context, value uint64) (string, error)
	GrantSelfAccess(ctx context.Context, handle string) error
	GrantAccess(ctx context.Context, handle, principal string) error
}

// Notifier defines the secondary port for mutation notifications.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}
