package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// MinCancelReasonLen applies to a staff cancel reason when one is given.
const MinCancelReasonLen = 10

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create        *ucAppointment.CreateAppointment
	setStatus     *ucAppointment.SetStatus
	bookedSlots   *ucAppointment.GetBookedSlots
	list          *ucAppointment.ListAppointments
	get           *ucAppointment.GetAppointment
	stats         *ucAppointment.Stats
	lookup        *ucAppointment.LookupAppointment
	patientCancel *ucAppointment.PatientCancel
	log           zerolog.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	setStatus *ucAppointment.SetStatus,
	bookedSlots *ucAppointment.GetBookedSlots,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	stats *ucAppointment.Stats,
	lookup *ucAppointment.LookupAppointment,
	patientCancel *ucAppointment.PatientCancel,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:        create,
		setStatus:     setStatus,
		bookedSlots:   bookedSlots,
		list:          list,
		get:           get,
		stats:         stats,
		lookup:        lookup,
		patientCancel: patientCancel,
		log:           log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Procedure string `json:"procedure"`
	Branch    string `json:"branch"`
	Date      string `json:"date"`
	Time      string `json:"time"`

	UnderHMO            string `json:"underHMO"`
	HMOProvider         string `json:"hmoProvider"`
	HMOMembershipNumber string `json:"hmoMembershipNumber"`
	Employer            string `json:"employer"`
}

type UpdateStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Remarks *string `json:"remarks"`
}

type BookingRequest struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Procedure:           req.Procedure,
		Branch:              req.Branch,
		Date:                req.Date,
		Time:                req.Time,
		UnderHMO:            req.UnderHMO,
		HMOProvider:         req.HMOProvider,
		HMOMembershipNumber: req.HMOMembershipNumber,
		Employer:            req.Employer,
	})
	if err != nil {
		h.fail(c, err, "create appointment")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Booked(c *gin.Context) {
	times, err := h.bookedSlots.Execute(c.Request.Context(), c.Query("branch"), c.Query("date"))
	if err != nil {
		h.fail(c, err, "booked slots")
		return
	}

	httpresp.OK(c, dto.BookedSlots{BookedTimes: times})
}

func (h *AppointmentHandler) Lookup(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	res, err := h.lookup.Execute(c.Request.Context(), req.BookingID, req.Email)
	if err != nil {
		h.fail(c, err, "lookup appointment")
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) PatientCancel(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if err := h.patientCancel.Execute(c.Request.Context(), req.BookingID, req.Email); err != nil {
		h.fail(c, err, "patient cancel")
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment cancelled successfully"})
}

// ======================================================
// STAFF
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		Status: c.Query("status"),
		Branch: c.Query("branch"),
		Date:   c.Query("date"),
	})
	if err != nil {
		h.fail(c, err, "list appointments")
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err, "appointment stats")
		return
	}

	httpresp.OK(c, stats)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required")
		return
	}

	// A cancel reason is optional, but a given one must be meaningful.
	if req.Status == string(domain.StatusCancelled) && req.Remarks != nil {
		reason := strings.TrimSpace(*req.Remarks)
		switch {
		case reason == "":
			req.Remarks = nil
		case len(reason) < MinCancelReasonLen:
			httperr.BadRequest(c, "cancel_reason_too_short", "Cancellation reason must be at least 10 characters")
			return
		default:
			req.Remarks = &reason
		}
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), ucAppointment.SetStatusInput{
		ID:      id,
		Status:  req.Status,
		Date:    req.Date,
		Time:    req.Time,
		Remarks: req.Remarks,
		Actor:   middleware.Actor(c),
	})
	if err != nil {
		h.fail(c, err, "set status")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id")
		return 0, false
	}
	return uint(id), true
}

// fail writes business errors as-is and everything else as a logged 500.
func (h *AppointmentHandler) fail(c *gin.Context, err error, op string) {
	if httperr.Business(c, err) {
		return
	}

	h.log.Error().
		Err(err).
		Str("op", op).
		Str("request_id", c.GetString(middleware.ContextRequestID)).
		Msg("request failed")

	httperr.Internal(c, "internal_error", http.StatusText(http.StatusInternalServerError))
}
