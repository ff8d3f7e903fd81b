package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fitlane/trainer-scheduler/internal/httperr"
	"github.com/fitlane/trainer-scheduler/internal/httpresp"
	"github.com/fitlane/trainer-scheduler/internal/middleware"
	ucSchedule "github.com/fitlane/trainer-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type WorkScheduleHandler struct {
	addSlot       *ucSchedule.AddSlot
	removeSlot    *ucSchedule.RemoveSlot
	replaceWeek   *ucSchedule.ReplaceWeek
	listAvailable *ucSchedule.ListAvailable
}

func NewWorkScheduleHandler(
	addSlot *ucSchedule.AddSlot,
	removeSlot *ucSchedule.RemoveSlot,
	replaceWeek *ucSchedule.ReplaceWeek,
	listAvailable *ucSchedule.ListAvailable,
) *WorkScheduleHandler {
	return &WorkScheduleHandler{
		addSlot:       addSlot,
		removeSlot:    removeSlot,
		replaceWeek:   replaceWeek,
		listAvailable: listAvailable,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddSlotRequest struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Note      string `json:"note"`
}

type ReplaceWeekRequest struct {
	Availability []AddSlotRequest `json:"availability" binding:"required"`
}

// ======================================================
// LIST (public, customer booking UI)
// ======================================================

func (h *WorkScheduleHandler) ListAvailable(c *gin.Context) {
	trainerID, err := parseIDParam(c, "trainerId")
	if err != nil {
		httperr.BadRequest(c, "invalid_trainer_id", "trainer id must be a positive integer")
		return
	}

	slots, err := h.listAvailable.Execute(c.Request.Context(), trainerID)
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_list_slots")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *WorkScheduleHandler) Create(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	var req AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid slot payload")
		return
	}

	slot, err := h.addSlot.Execute(c.Request.Context(), ucSchedule.AddSlotInput{
		TrainerID: trainerID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	})
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_add_slot")
		return
	}

	httpresp.Created(c, slot)
}

// ======================================================
// REPLACE WEEK (trainer profile availability[] update)
// ======================================================

func (h *WorkScheduleHandler) Replace(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid availability payload")
		return
	}

	slots := make([]ucSchedule.WeekSlotConfig, 0, len(req.Availability))
	for _, s := range req.Availability {
		slots = append(slots, ucSchedule.WeekSlotConfig{
			Weekday:   s.Weekday,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Note:      s.Note,
		})
	}

	updated, err := h.replaceWeek.Execute(c.Request.Context(), ucSchedule.ReplaceWeekInput{
		TrainerID: trainerID,
		Slots:     slots,
	})
	if err != nil {
		httperr.FromDomain(c, err, "failed_to_replace_availability")
		return
	}

	httpresp.List(c, updated)
}

// ======================================================
// DELETE
// ======================================================

func (h *WorkScheduleHandler) Delete(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	slotID, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "slot id must be a positive integer")
		return
	}

	if err := h.removeSlot.Execute(c.Request.Context(), trainerID, slotID); err != nil {
		httperr.FromDomain(c, err, "failed_to_remove_slot")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
