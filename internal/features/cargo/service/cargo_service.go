package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"privacy-cargo-tracking/internal/core/logger"
	"privacy-cargo-tracking/internal/features/cargo/domain"
	"privacy-cargo-tracking/internal/features/cargo/ports"

	"go.uber.org/zap"
)

// CargoServiceImpl implements ports.CargoService.
type CargoServiceImpl struct {
	repo      ports.ShipmentRepository
	encryptor ports.Encryptor
	notifiers []ports.Notifier
}

// NewCargoService creates a new CargoServiceImpl.
func NewCargoService(repo ports.ShipmentRepository, encryptor ports.Encryptor, notifiers []ports.Notifier) *CargoServiceImpl {
	return &CargoServiceImpl{
		repo:      repo,
		encryptor: encryptor,
		notifiers: notifiers,
	}
}

// Create encrypts the confidential inputs, grants the service and the
// creator access to each ciphertext handle, and stores the record. The
// creator becomes the owner.
func (s *CargoServiceImpl) Create(ctx context.Context, caller, id, destination string, priority uint64, fragile bool, value uint64) (*domain.ShipmentRecord, error) {
	if caller == "" {
		return nil, errors.Join(domain.ErrInvalidArgument, errors.New("caller must not be empty"))
	}
	if id == "" {
		return nil, errors.Join(domain.ErrInvalidArgument, errors.New("id must not be empty"))
	}
	if destination == "" {
		return nil, errors.Join(domain.ErrInvalidArgument, errors.New("destination must not be empty"))
	}
	if err := domain.ValidatePriority(priority); err != nil {
		return nil, err
	}

	// Taken ids fail before any ciphertext is minted, so a rejected create
	// leaves no orphaned handles or grants behind. The SetNX in the
	// repository stays the authoritative guard against concurrent creates.
	if _, err := s.repo.Get(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, id)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("service: failed to check shipment id: %w", err)
	}

	encPriority, err := s.encryptor.EncryptSmall(ctx, priority)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encrypt priority: %w", err)
	}
	encFragile, err := s.encryptor.EncryptBool(ctx, fragile)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encrypt fragility: %w", err)
	}
	encValue, err := s.encryptor.EncryptUint64(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encrypt value: %w", err)
	}

	// The service keeps access so later calls can re-grant the handles;
	// the creator gets access as the owner.
	for _, handle := range []string{encPriority, encFragile, encValue} {
		if err := s.encryptor.GrantSelfAccess(ctx, handle); err != nil {
			return nil, fmt.Errorf("service: failed to self-grant handle: %w", err)
		}
		if err := s.encryptor.GrantAccess(ctx, handle, caller); err != nil {
			return nil, fmt.Errorf("service: failed to grant handle to owner: %w", err)
		}
	}

	record, err := domain.NewShipmentRecord(id, destination, caller, encPriority, encFragile, encValue)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Event{
		Type:  domain.EventCreated,
		ID:    record.ID,
		Owner: record.Owner,
		At:    record.UpdatedAt,
	})

	return record, nil
}

// UpdateStatus overwrites status and location and refreshes the
// timestamp. Encrypted fields and grants are untouched.
func (s *CargoServiceImpl) UpdateStatus(ctx context.Context, caller, id, status, location string) error {
	record, err := s.ownedRecord(ctx, caller, id)
	if err != nil {
		return err
	}

	record.Status = status
	record.Location = location
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("service: failed to update shipment: %w", err)
	}

	s.notify(ctx, domain.Event{
		Type:     domain.EventStatusChanged,
		ID:       record.ID,
		Status:   record.Status,
		Location: record.Location,
		At:       record.UpdatedAt,
	})

	return nil
}

// UpdatePrivacy sets the visibility flag and replaces the authorized
// viewer (empty clears it). A non-empty viewer is granted access to all
// three ciphertext handles; the previous viewer's grants are NOT revoked.
// The encryption model has no ungrant, so replacing the viewer only
// changes who the plaintext gates recognize going forward.
func (s *CargoServiceImpl) UpdatePrivacy(ctx context.Context, caller, id string, isPublic bool, viewer string) error {
	record, err := s.ownedRecord(ctx, caller, id)
	if err != nil {
		return err
	}

	if viewer != domain.NoViewer {
		if err := s.grantHandles(ctx, record, viewer); err != nil {
			return err
		}
	}

	record.IsPublic = isPublic
	record.AuthorizedViewer = viewer

	if err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("service: failed to update shipment: %w", err)
	}

	s.notify(ctx, domain.Event{
		Type:     domain.EventPrivacyChanged,
		ID:       record.ID,
		IsPublic: record.IsPublic,
		At:       time.Now().UTC(),
	})

	return nil
}

// AuthorizeViewer grants the viewer access to the record's ciphertext
// handles and makes it the current authorized viewer.
func (s *CargoServiceImpl) AuthorizeViewer(ctx context.Context, caller, id, viewer string) error {
	if viewer == domain.NoViewer {
		return errors.Join(domain.ErrInvalidArgument, errors.New("viewer must not be empty"))
	}

	record, err := s.ownedRecord(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.grantHandles(ctx, record, viewer); err != nil {
		return err
	}

	record.AuthorizedViewer = viewer

	if err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("service: failed to update shipment: %w", err)
	}

	s.notify(ctx, domain.Event{
		Type:   domain.EventViewerAuthorized,
		ID:     record.ID,
		Viewer: viewer,
		At:     time.Now().UTC(),
	})

	return nil
}

// ReadField returns a single field of the record after evaluating the
// gate the field carries. Fails closed on a missing record or a failed
// predicate.
func (s *CargoServiceImpl) ReadField(ctx context.Context, caller, id string, field domain.Field) (string, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if err := record.Authorize(field.Gate(), caller); err != nil {
		return "", err
	}

	return field.Project(record)
}

// ListOwned returns the ids of shipments created by the caller.
func (s *CargoServiceImpl) ListOwned(ctx context.Context, caller string) ([]string, error) {
	if caller == "" {
		return nil, errors.Join(domain.ErrInvalidArgument, errors.New("caller must not be empty"))
	}

	ids, err := s.repo.OwnedIDs(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list owned shipments: %w", err)
	}
	return ids, nil
}

// ownedRecord loads the record and enforces the owner-only mutation rule.
func (s *CargoServiceImpl) ownedRecord(ctx context.Context, caller, id string) (*domain.ShipmentRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsOwner(caller) {
		return nil, domain.ErrUnauthorized
	}
	return record, nil
}

// grantHandles grants the principal access to all three encrypted fields.
// Grants are idempotent in the engine.
func (s *CargoServiceImpl) grantHandles(ctx context.Context, record *domain.ShipmentRecord, principal string) error {
	for _, handle := range []string{record.EncPriority, record.EncFragile, record.EncValue} {
		if err := s.encryptor.GrantAccess(ctx, handle, principal); err != nil {
			return fmt.Errorf("service: failed to grant handle to viewer: %w", err)
		}
	}
	return nil
}

// notify fans the event out to all configured notifiers. Delivery
// failures are logged, not surfaced: the mutation is already committed
// and consumers are external collaborators.
func (s *CargoServiceImpl) notify(ctx context.Context, event domain.Event) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			logger.Get().Warn("Event delivery failed",
				zap.String("event", string(event.Type)),
				zap.String("id", event.ID),
				zap.Error(err),
			)
		}
	}
}
