package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/dto"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/session"
	ucAppointment "github.com/BruksfildServices01/service-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	list         *ucAppointment.ListAppointments
	charge       *ucAppointment.CreateNoShowCharge
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	list *ucAppointment.ListAppointments,
	charge *ucAppointment.CreateNoShowCharge,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		list:         list,
		charge:       charge,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	StaffID   uuid.UUID `json:"staff_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Notes     string    `json:"notes" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CompanyID: sess.CompanyID,
		UserID:    sess.UserID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	in := ucAppointment.ListAppointmentsInput{
		CompanyID: sess.CompanyID,
		From:      c.Query("from"),
		To:        c.Query("to"),
		Status:    c.Query("status"),
	}

	if raw := c.Query("staff_id"); raw != "" {
		staffID, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
			return
		}
		in.StaffID = &staffID
	}

	list, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentStatusInput{
		CompanyID:     sess.CompanyID,
		UserID:        sess.UserID,
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// NO-SHOW CHARGE
// ======================================================

func (h *AppointmentHandler) CreateNoShowCharge(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	charge, err := h.charge.Execute(c.Request.Context(), ucAppointment.CreateNoShowChargeInput{
		CompanyID:     sess.CompanyID,
		UserID:        sess.UserID,
		AppointmentID: id,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, charge)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return uuid.Nil, false
	}
	return id, true
}
