package domain

import (
	"errors"
	"strconv"
	"time"
)

// Field identifies one readable projection of a shipment record. Each
// field carries its gate kind, so every accessor flows through the same
// Authorize policy instead of repeating the predicate inline.
type Field string

const (
	// Standard-gated plaintext fields.
	FieldID          Field = "id"
	FieldDestination Field = "destination"
	FieldStatus      Field = "status"
	FieldLocation    Field = "location"
	FieldOwner       Field = "owner"
	FieldTimestamp   Field = "timestamp"

	// Public-only fields: the "no wallet required" read path.
	FieldPublicDestination Field = "public_destination"
	FieldPublicStatus      Field = "public_status"
	FieldPublicLocation    Field = "public_location"
	FieldPublicOwner       Field = "public_owner"

	// Encrypted-field handles.
	FieldEncryptedPriority Field = "encrypted_priority"
	FieldEncryptedFragile  Field = "encrypted_fragile"
	FieldEncryptedValue    Field = "encrypted_value"
)

// ErrUnknownField indicates a field name outside the accessor surface.
var ErrUnknownField = errors.New("unknown field")

// Gate returns the authorization gate guarding this field.
func (f Field) Gate() Gate {
	switch f {
	case FieldPublicDestination, FieldPublicStatus, FieldPublicLocation, FieldPublicOwner:
		return GatePublicOnly
	case FieldEncryptedPriority, FieldEncryptedFragile, FieldEncryptedValue:
		return GateEncrypted
	default:
		return GateStandard
	}
}

// Project extracts this field's value from the record. Timestamps are
// rendered as Unix seconds to match the ledger-style original.
func (f Field) Project(r *ShipmentRecord) (string, error) {
	switch f {
	case FieldID:
		return r.ID, nil
	case FieldDestination, FieldPublicDestination:
		return r.Destination, nil
	case FieldStatus, FieldPublicStatus:
		return r.Status, nil
	case FieldLocation, FieldPublicLocation:
		return r.Location, nil
	case FieldOwner, FieldPublicOwner:
		return r.Owner, nil
	case FieldTimestamp:
		return strconv.FormatInt(r.UpdatedAt.Unix(), 10), nil
	case FieldEncryptedPriority:
		return r.EncPriority, nil
	case FieldEncryptedFragile:
		return r.EncFragile, nil
	case FieldEncryptedValue:
		return r.EncValue, nil
	default:
		return "", ErrUnknownField
	}
}

// ParseStandardField maps a route segment to a standard-gated field.
func ParseStandardField(name string) (Field, error) {
	switch Field(name) {
	case FieldID, FieldDestination, FieldStatus, FieldLocation, FieldOwner, FieldTimestamp:
		return Field(name), nil
	}
	return "", ErrUnknownField
}

// ParsePublicField maps a route segment to a public-only field.
func ParsePublicField(name string) (Field, error) {
	switch name {
	case "destination":
		return FieldPublicDestination, nil
	case "status":
		return FieldPublicStatus, nil
	case "location":
		return FieldPublicLocation, nil
	case "owner":
		return FieldPublicOwner, nil
	}
	return "", ErrUnknownField
}

// ParseEncryptedField maps a route segment to an encrypted-field handle.
func ParseEncryptedField(name string) (Field, error) {
	switch name {
	case "priority":
		return FieldEncryptedPriority, nil
	case "fragile":
		return FieldEncryptedFragile, nil
	case "value":
		return FieldEncryptedValue, nil
	}
	return "", ErrUnknownField
}

// EventType names a mutation notification.
type EventType string

const (
	// EventCreated is emitted when a shipment record is created.
	EventCreated EventType = "cargo.created"
	// EventStatusChanged is emitted when status/location change.
	EventStatusChanged EventType = "cargo.status_changed"
	// EventPrivacyChanged is emitted when visibility or viewer change.
	EventPrivacyChanged EventType = "cargo.privacy_changed"
	// EventViewerAuthorized is emitted when a viewer is granted access.
	EventViewerAuthorized EventType = "cargo.viewer_authorized"
)

// Event is a mutation notification for external consumers (dashboards,
// indexers). Only the fields relevant to the event type are set.
type Event struct {
	Type     EventType `json:"type"`
	ID       string    `json:"id"`
	Owner    string    `json:"owner,omitempty"`
	Status   string    `json:"status,omitempty"`
	Location string    `json:"location,omitempty"`
	IsPublic bool      `json:"is_public"`
	Viewer   string    `json:"viewer,omitempty"`
	At       time.Time `json:"at"`
}
