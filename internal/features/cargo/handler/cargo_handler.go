package handler

import (
	"errors"

	"privacy-cargo-tracking/internal/core/logger"
	"privacy-cargo-tracking/internal/features/cargo/domain"
	"privacy-cargo-tracking/internal/features/cargo/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CallerHeader carries the caller's wallet address. Public routes work
// without it.
const CallerHeader = "X-Wallet-Address"

// CargoHandler handles HTTP requests for shipment operations.
type CargoHandler struct {
	service ports.CargoService
}

// NewCargoHandler creates a new CargoHandler.
func NewCargoHandler(service ports.CargoService) *CargoHandler {
	return &CargoHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CreateCargoRequest represents the request body for creating a shipment.
type CreateCargoRequest struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Priority    uint64 `json:"priority"`
	Fragile     bool   `json:"fragile"`
	Value       uint64 `json:"value"`
}

// UpdateStatusRequest represents the request body for a status update.
type UpdateStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// UpdatePrivacyRequest represents the request body for a privacy update.
type UpdatePrivacyRequest struct {
	IsPublic bool `json:"is_public"`
	// Viewer replaces the current authorized viewer; empty clears it.
	Viewer string `json:"viewer"`
}

// AuthorizeViewerRequest represents the request body for a viewer grant.
type AuthorizeViewerRequest struct {
	Viewer string `json:"viewer"`
}

// FieldResponse carries a single field read.
type FieldResponse struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// CreateCargo godoc
// @Summary Create a shipment
// @Description Creates a shipment record; priority, fragility and value are stored encrypted.
// @Tags cargo
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Caller address"
// @Param cargo body CreateCargoRequest true "Shipment details"
// @Success 201 {object} domain.ShipmentRecord
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cargo [post]
func (h *CargoHandler) CreateCargo(c *fiber.Ctx) error {
	caller := c.Get(CallerHeader)
	if caller == "" {
		return h.fail(c, fiber.StatusBadRequest, "wallet address header is required")
	}

	var req CreateCargoRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Create(c.Context(), caller, req.ID, req.Destination, req.Priority, req.Fragile, req.Value)
	if err != nil {
		return h.failFromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListOwned godoc
// @Summary List owned shipments
// @Description Lists the shipment ids created by the calling address.
// @Tags cargo
// @Produce json
// @Param X-Wallet-Address header string true "Caller address"
// @Success 200 {object} map[string][]string
// @Failure 400 {object} ErrorResponse
// @Router /cargo [get]
func (h *CargoHandler) ListOwned(c *fiber.Ctx) error {
	caller := c.Get(CallerHeader)
	if caller == "" {
		return h.fail(c, fiber.StatusBadRequest, "wallet address header is required")
	}

	ids, err := h.service.ListOwned(c.Context(), caller)
	if err != nil {
		return h.failFromError(c, err)
	}

	return c.JSON(fiber.Map{"ids": ids})
}

// UpdateStatus godoc
// @Summary Update shipment status
// @Description Owner-only update of the status and location fields.
// @Tags cargo
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param X-Wallet-Address header string true "Caller address"
// @Param update body UpdateStatusRequest true "New status and location"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cargo/{id}/status [put]
func (h *CargoHandler) UpdateStatus(c *fiber.Ctx) error {
	caller := c.Get(CallerHeader)
	if caller == "" {
		return h.fail(c, fiber.StatusBadRequest, "wallet address header is required")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.UpdateStatus(c.Context(), caller, c.Params("id"), req.Status, req.Location); err != nil {
		return h.failFromError(c, err)
	}

	return c.JSON(fiber.Map{"message": "status updated"})
}

// UpdatePrivacy godoc
// @Summary Update privacy settings
// @Description Owner-only update of visibility and the authorized viewer.
// @Tags cargo
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param X-Wallet-Address header string true "Caller address"
// @Param update body UpdatePrivacyRequest true "New privacy settings"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cargo/{id}/privacy [put]
func (h *CargoHandler) UpdatePrivacy(c *fiber.Ctx) error {
	caller := c.Get(CallerHeader)
	if caller == "" {
		return h.fail(c, fiber.StatusBadRequest, "wallet address header is required")
	}

	var req UpdatePrivacyRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.UpdatePrivacy(c.Context(), caller, c.Params("id"), req.IsPublic, req.Viewer); err != nil {
		return h.failFromError(c, err)
	}

	return c.JSON(fiber.Map{"message": "privacy updated"})
}

// AuthorizeViewer godoc
// @Summary Authorize a viewer
// @Description Owner-only grant of encrypted-field access to a viewer address.
// @Tags cargo
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param X-Wallet-Address header string true "Caller address"
// @Param grant body AuthorizeViewerRequest true "Viewer address"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cargo/{id}/viewer [post]
func (h *CargoHandler) AuthorizeViewer(c *fiber.Ctx) error {
	caller := c.Get(CallerHeader)
	if caller == "" {
		return h.fail(c, fiber.StatusBadRequest, "wallet address header is required")
	}

	var req AuthorizeViewerRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.AuthorizeViewer(c.Context(), caller, c.Params("id"), req.Viewer); err != nil {
		return h.failFromError(c, err)
	}

	return c.JSON(fiber.Map{"message": "viewer authorized"})
}

// GetField godoc
// @Summary Read a gated plaintext field
// @Description Reads one plaintext field. Passes for the owner, the current viewer, or anyone when the record is public.
// @Tags cargo
// @Produce json
// @Param id path string true "Shipment ID"
// @Param field path string true "id | destination | status | location | owner | timestamp"
// @Param X-Wallet-Address header string false "Caller address"
// @Success 200 {object} FieldResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cargo/{id}/{field} [get]
func (h *CargoHandler) GetField(c *fiber.Ctx) error {
	field, err := domain.ParseStandardField(c.Params("field"))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "unknown field")
	}
	return h.readField(c, field)
}

// GetPublicField godoc
// @Summary Read a public field
// @Description Reads one plaintext field of a public record. No wallet header required.
// @Tags public
// @Produce json
// @Param id path string true "Shipment ID"
// @Param field path string true "destination | status | location | owner"
// @Success 200 {object} FieldResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/cargo/{id}/{field} [get]
func (h *CargoHandler) GetPublicField(c *fiber.Ctx) error {
	field, err := domain.ParsePublicField(c.Params("field"))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "unknown field")
	}
	return h.readField(c, field)
}

// GetEncryptedField godoc
// @Summary Read an encrypted-field handle
// @Description Returns a ciphertext handle. Owner or current viewer only; public visibility never grants ciphertext access.
// @Tags cargo
// @Produce json
// @Param id path string true "Shipment ID"
// @Param field path string true "priority | fragile | value"
// @Param X-Wallet-Address header string true "Caller address"
// @Success 200 {object} FieldResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cargo/{id}/encrypted/{field} [get]
func (h *CargoHandler) GetEncryptedField(c *fiber.Ctx) error {
	field, err := domain.ParseEncryptedField(c.Params("field"))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "unknown field")
	}
	return h.readField(c, field)
}

func (h *CargoHandler) readField(c *fiber.Ctx, field domain.Field) error {
	id := c.Params("id")
	value, err := h.service.ReadField(c.Context(), c.Get(CallerHeader), id, field)
	if err != nil {
		return h.failFromError(c, err)
	}

	return c.JSON(FieldResponse{
		ID:    id,
		Field: string(field),
		Value: value,
	})
}

// failFromError maps domain errors onto HTTP statuses. Every violation
// aborts the whole call; there is no partial-result path.
func (h *CargoHandler) failFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return h.fail(c, fiber.StatusNotFound, "shipment not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return h.fail(c, fiber.StatusConflict, "shipment already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		return h.fail(c, fiber.StatusForbidden, "caller not authorized")
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnknownField):
		return h.fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logger.Get().Error("Unhandled service error", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func (h *CargoHandler) fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
