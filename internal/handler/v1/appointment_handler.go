package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/internal/domain/appointment"
	"github.com/healthnet/scheduling/internal/service"
)

type AppointmentHandler struct {
	scheduler *service.SchedulingService
}

func NewAppointmentHandler(scheduler *service.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{scheduler: scheduler}
}

type scheduleRequest struct {
	// PatientID is ignored for patient callers; they always book themselves.
	PatientID  uuid.UUID `json:"patient_id"`
	DoctorID   uuid.UUID `json:"doctor_id" binding:"required"`
	HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
}

type rescheduleRequest struct {
	HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
}

type appointmentResponse struct {
	ID         uuid.UUID `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DoctorID   uuid.UUID `json:"doctor_id"`
	PatientID  uuid.UUID `json:"patient_id"`
	HospitalID uuid.UUID `json:"hospital_id"`
}

type calendarEntry struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
}

type calendarResponse struct {
	Appointments []calendarEntry `json:"appointments"`
	CanCreate    bool            `json:"can_create"`
}

// Calendar lists the appointments visible to the caller, titled from the
// caller's perspective, plus whether the "new appointment" action should be
// offered (patients with an outstanding booking get false).
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	act := mustActor(c)

	appts, err := h.scheduler.ListVisibleAppointments(c.Request.Context(), act)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entries := make([]calendarEntry, 0, len(appts))
	for _, a := range appts {
		entries = append(entries, calendarEntry{
			ID:     a.ID,
			Title:  act.AppointmentTitle(a),
			Start:  a.Start,
			End:    a.End,
			AllDay: false,
		})
	}

	canCreate := true
	if act.Role() == domain.RolePatient {
		canCreate, err = h.scheduler.CanCreateAppointment(c.Request.Context(), act.PersonID())
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	respondOK(c, calendarResponse{Appointments: entries, CanCreate: canCreate})
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req scheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.scheduler.CreateAppointment(c.Request.Context(), mustActor(c), &service.ScheduleCommand{
		PatientID:  req.PatientID,
		DoctorID:   req.DoctorID,
		HospitalID: req.HospitalID,
		Start:      req.Start,
		End:        req.End,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req rescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.scheduler.UpdateAppointment(c.Request.Context(), mustActor(c), id, &service.RescheduleCommand{
		Start:      req.Start,
		End:        req.End,
		HospitalID: req.HospitalID,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.scheduler.CancelAppointment(c.Request.Context(), mustActor(c), id, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type patientEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListPatients returns the patients the caller may book for, per the role
// visibility policy.
func (h *AppointmentHandler) ListPatients(c *gin.Context) {
	patients, err := h.scheduler.ListVisiblePatients(c.Request.Context(), mustActor(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entries := make([]patientEntry, 0, len(patients))
	for _, p := range patients {
		entries = append(entries, patientEntry{ID: p.ID, Name: p.Name})
	}
	respondOK(c, entries)
}

func toAppointmentResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:         a.ID,
		Start:      a.Start,
		End:        a.End,
		DoctorID:   a.DoctorID,
		PatientID:  a.PatientID,
		HospitalID: a.HospitalID,
	}
}
