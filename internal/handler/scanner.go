package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/service"
)

// ScannerHandler covers the gate: QR scanning and desk check-in.
type ScannerHandler struct {
	CheckIns *service.CheckInService
}

func NewScannerHandler(s *service.CheckInService) *ScannerHandler {
	return &ScannerHandler{CheckIns: s}
}

type scanReq struct {
	QRCode   string  `json:"qr_code"`
	Gate     *string `json:"gate"`
	DeviceID *string `json:"device_id"`
}

type deskCheckInReq struct {
	Gate     *string `json:"gate"`
	DeviceID *string `json:"device_id"`
}

type checkInResp struct {
	ID             uint64    `json:"id"`
	RegistrationID uint64    `json:"registration_id"`
	Gate           *string   `json:"gate,omitempty"`
	DeviceID       *string   `json:"device_id,omitempty"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

func toCheckInResp(ci model.CheckIn) checkInResp {
	return checkInResp{
		ID: ci.ID, RegistrationID: ci.RegistrationID,
		Gate: ci.Gate, DeviceID: ci.DeviceID, CheckedInAt: ci.CheckedInAt,
	}
}

// Scan records a check-in for the ticket behind a scanned QR code.  Any
// organiser role on the event may scan.
func (h *ScannerHandler) Scan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ci, err := h.CheckIns.ScanQR(c.Request().Context(), currentUserID(c), req.QRCode, req.Gate, req.DeviceID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCheckInResp(ci))
}

// CheckIn records a check-in directly by registration id, for desks handling
// attendees without a scannable ticket.
func (h *ScannerHandler) CheckIn(c echo.Context) error {
	regID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid registration id")
	}
	var req deskCheckInReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ci, err := h.CheckIns.CheckInRegistration(c.Request().Context(), currentUserID(c), regID, req.Gate, req.DeviceID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCheckInResp(ci))
}
