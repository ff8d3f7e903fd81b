package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitlane/trainer-scheduler/internal/dto"
	"github.com/fitlane/trainer-scheduler/internal/httperr"
	"github.com/fitlane/trainer-scheduler/internal/httpresp"
	"github.com/fitlane/trainer-scheduler/internal/middleware"
	"github.com/fitlane/trainer-scheduler/internal/notify"
	ucRegistration "github.com/fitlane/trainer-scheduler/internal/usecase/registration"
)

// ======================================================
// HANDLER
// ======================================================

type RegistrationHandler struct {
	createBatch    *ucRegistration.CreateBatch
	createSingle   *ucRegistration.CreateSingle
	approve        *ucRegistration.Approve
	reject         *ucRegistration.Reject
	cancel         *ucRegistration.Cancel
	complete       *ucRegistration.Complete
	recordProgress *ucRegistration.RecordProgress
	list           *ucRegistration.List
	poller         *notify.Poller
}

func NewRegistrationHandler(
	createBatch *ucRegistration.CreateBatch,
	createSingle *ucRegistration.CreateSingle,
	approve *ucRegistration.Approve,
	reject *ucRegistration.Reject,
	cancel *ucRegistration.Cancel,
	complete *ucRegistration.Complete,
	recordProgress *ucRegistration.RecordProgress,
	list *ucRegistration.List,
	poller *notify.Poller,
) *RegistrationHandler {
	return &RegistrationHandler{
		createBatch:    createBatch,
		createSingle:   createSingle,
		approve:        approve,
		reject:         reject,
		cancel:         cancel,
		complete:       complete,
		recordProgress: recordProgress,
		list:           list,
		poller:         poller,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateRegistrationRequest struct {
	TrainerID uint   `json:"trainer_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	Notes     string `json:"notes"`

	// SlotIDs selects the batched path: one pending registration per slot.
	SlotIDs []uint `json:"slot_ids"`

	// NumberOfSessions is used by the direct path (no slots).
	NumberOfSessions int `json:"number_of_sessions"`

	RequestToken string `json:"request_token"`
}

type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type UpdateSessionsRequest struct {
	CompletedSessions *int `json:"completed_sessions" binding:"required"`
}

// ======================================================
// CREATE (batch or direct)
// ======================================================

func (h *RegistrationHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid registration payload")
		return
	}

	if len(req.SlotIDs) > 0 {
		regs, err := h.createBatch.Execute(c.Request.Context(), ucRegistration.CreateBatchInput{
			CustomerID:   customerID,
			TrainerID:    req.TrainerID,
			ServiceID:    req.ServiceID,
			StartDate:    req.StartDate,
			Notes:        req.Notes,
			SlotIDs:      req.SlotIDs,
			RequestToken: req.RequestToken,
		})
		if err != nil {
			httperr.FromDomain(c, err, "failed_to_create_registrations")
			return
		}

		httpresp.Created(c, dto.BatchCreatedDTO{
			BatchID:       regs[0].BatchID,
			Registrations: regs,
			Total:         len(regs),
		})
		return
	}

	reg, err := h.createSingle.Execute(c.Request.Context(), ucRegistration.CreateSingleInput{
		CustomerID:       customerID,
		TrainerID:        req.TrainerID,
		ServiceID:        req.ServiceID,
		StartDate:        req.StartDate,
		NumberOfSessions: req.NumberOfSessions,
		Notes:            req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_create_registration")
		return
	}

	httpresp.Created(c, reg)
}

// ======================================================
// LIST
// ======================================================

func (h *RegistrationHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	regs, err := h.list.ForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_list_registrations")
		return
	}

	httpresp.List(c, regs)
}

func (h *RegistrationHandler) ListCustomers(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	regs, err := h.list.ForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_list_registrations")
		return
	}

	httpresp.List(c, regs)
}

// ListNew is the provider notification poll: pending registrations created
// since the trainer's previous call.
func (h *RegistrationHandler) ListNew(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	regs, err := h.poller.CheckNew(c.Request.Context(), trainerID)
	if err != nil {
		httperr.Internal(c, "failed_to_poll_registrations", "could not check for new registrations")
		return
	}

	httpresp.List(c, regs)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *RegistrationHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_registration_id", "registration id must be a positive integer")
		return
	}

	reg, err := h.cancel.Execute(c.Request.Context(), actorID, role == middleware.RoleAdmin, id)
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_cancel_registration")
		return
	}

	httpresp.OK(c, reg)
}

func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_registration_id", "registration id must be a positive integer")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid status payload")
		return
	}

	ctx := c.Request.Context()

	switch req.Status {
	case "approved":
		reg, err := h.approve.Execute(ctx, trainerID, id)
		if err != nil {
			httperr.FromDomain(c, err, "failed_to_update_status")
			return
		}
		httpresp.OK(c, reg)

	case "rejected":
		reg, err := h.reject.Execute(ctx, trainerID, id, req.RejectionReason)
		if err != nil {
			httperr.FromDomain(c, err, "failed_to_update_status")
			return
		}
		httpresp.OK(c, reg)

	case "completed":
		reg, err := h.complete.Execute(ctx, trainerID, id)
		if err != nil {
			httperr.FromDomain(c, err, "failed_to_update_status")
			return
		}
		httpresp.OK(c, reg)

	default:
		httperr.BadRequest(c, "invalid_status", "status must be approved, rejected or completed")
	}
}

func (h *RegistrationHandler) UpdateSessions(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_registration_id", "registration id must be a positive integer")
		return
	}

	var req UpdateSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CompletedSessions == nil {
		httperr.BadRequest(c, "invalid_request", "completed_sessions is required")
		return
	}

	reg, err := h.recordProgress.Execute(c.Request.Context(), trainerID, id, *req.CompletedSessions)
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_update_sessions")
		return
	}

	httpresp.OK(c, reg)
}
