package domain

import (
	"errors"
	"time"
)

const (
	// StatusCreated is the status every shipment starts in.
	StatusCreated = "Created"
	// LocationOrigin is the location every shipment starts at.
	LocationOrigin = "Origin"

	// MaxPriority is the highest allowed priority level.
	MaxPriority = 3

	// NoViewer is the sentinel for "no authorized viewer".
	NoViewer = ""
)

var (
	// ErrNotFound indicates the shipment id has no record.
	ErrNotFound = errors.New("shipment not found")
	// ErrAlreadyExists indicates the shipment id is already taken.
	ErrAlreadyExists = errors.New("shipment already exists")
	// ErrUnauthorized indicates the caller fails the relevant gate.
	ErrUnauthorized = errors.New("caller not authorized")
	// ErrInvalidArgument indicates a malformed input (empty id/destination,
	// priority out of range, missing caller).
	ErrInvalidArgument = errors.New("invalid argument")
)

// Gate selects which authorization predicate guards an accessor.
type Gate int

const (
	// GateStandard passes for the owner, the current authorized viewer,
	// or anyone when the record is public.
	GateStandard Gate = iota
	// GatePublicOnly passes only for public records, regardless of caller.
	GatePublicOnly
	// GateEncrypted passes only for the owner or the current authorized
	// viewer. Public visibility never exposes ciphertext handles.
	GateEncrypted
)

// ShipmentRecord is a cargo shipment with three confidential fields kept
// as ciphertext handles. Records are created once and never deleted.
type ShipmentRecord struct {
	// ID is the unique shipment identifier, immutable once created.
	ID string `json:"id"`
	// Destination is the declared destination, set at creation.
	Destination string `json:"destination"`
	// Status is the current shipment status, owner-mutable.
	Status string `json:"status"`
	// Location is the current shipment location, owner-mutable.
	Location string `json:"location"`
	// EncPriority is the ciphertext handle for the priority level (0-3).
	EncPriority string `json:"enc_priority"`
	// EncFragile is the ciphertext handle for the fragility flag.
	EncFragile string `json:"enc_fragile"`
	// EncValue is the ciphertext handle for the declared value.
	EncValue string `json:"enc_value"`
	// Owner is the creating address. Fixed at creation, never transferable.
	Owner string `json:"owner"`
	// AuthorizedViewer is the single address currently recognized by the
	// plaintext gates. Last grant wins; empty means none.
	AuthorizedViewer string `json:"authorized_viewer"`
	// IsPublic makes the plaintext fields readable by any caller.
	IsPublic bool `json:"is_public"`
	// UpdatedAt is set at creation and refreshed by status updates.
	UpdatedAt time.Time `json:"updated_at"`
	// Exists marks a stored record. Records are never tombstoned.
	Exists bool `json:"exists"`
}

// NewShipmentRecord validates the creation inputs and returns a record in
// its initial state: status "Created" at "Origin", private, no viewer.
// The encrypted handles are produced by the caller (the service owns the
// encryption engine) and are never reassigned afterwards.
func NewShipmentRecord(id, destination, owner string, encPriority, encFragile, encValue string) (*ShipmentRecord, error) {
	if id == "" {
		return nil, errors.Join(ErrInvalidArgument, errors.New("id must not be empty"))
	}
	if destination == "" {
		return nil, errors.Join(ErrInvalidArgument, errors.New("destination must not be empty"))
	}
	if owner == "" {
		return nil, errors.Join(ErrInvalidArgument, errors.New("owner must not be empty"))
	}

	return &ShipmentRecord{
		ID:               id,
		Destination:      destination,
		Status:           StatusCreated,
		Location:         LocationOrigin,
		EncPriority:      encPriority,
		EncFragile:       encFragile,
		EncValue:         encValue,
		Owner:            owner,
		AuthorizedViewer: NoViewer,
		IsPublic:         false,
		UpdatedAt:        time.Now().UTC(),
		Exists:           true,
	}, nil
}

// ValidatePriority checks the priority is within the supported range.
func ValidatePriority(priority uint64) error {
	if priority > MaxPriority {
		return errors.Join(ErrInvalidArgument, errors.New("priority must be in [0,3]"))
	}
	return nil
}

// Authorize evaluates the gate predicate for the caller against this
// record. All gates fail closed: a failed predicate returns
// ErrUnauthorized and the accessor must not leak any field.
//
// The gate checks the *current* AuthorizedViewer only. A replaced viewer
// stops passing here immediately, even though ciphertext grants it
// received earlier remain valid in the encryption engine.
func (r *ShipmentRecord) Authorize(gate Gate, caller string) error {
	switch gate {
	case GateStandard:
		if caller == r.Owner || (caller != NoViewer && caller == r.AuthorizedViewer) || r.IsPublic {
			return nil
		}
	case GatePublicOnly:
		if r.IsPublic {
			return nil
		}
	case GateEncrypted:
		if caller == r.Owner || (caller != NoViewer && caller == r.AuthorizedViewer) {
			return nil
		}
	}
	return ErrUnauthorized
}

// IsOwner reports whether the caller owns this record.
func (r *ShipmentRecord) IsOwner(caller string) bool {
	return caller != "" && caller == r.Owner
}
