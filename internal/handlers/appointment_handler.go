package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/models"
	ucAppointment "github.com/ajoca/Barberia/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db           *gorm.DB
	createUC     *ucAppointment.CreateAppointment
	statusUC     *ucAppointment.UpdateStatus
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	statusUC *ucAppointment.UpdateStatus,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		createUC:     createUC,
		statusUC:     statusUC,
		availability: availability,
	}
}

// ======================================================
// REQUESTS / DTOs
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AppointmentListDTO struct {
	ID          uint       `json:"id"`
	ClientName  string     `json:"client_name"`
	BarberName  string     `json:"barber_name"`
	ServiceName string     `json:"service_name"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	EndTime     time.Time  `json:"end_time"`
	DurationMin int        `json:"duration_minutes"`
	Status      string     `json:"status"`
	TotalPrice  float64    `json:"total_price"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseInstant(req.ScheduledAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	// admins agendam em nome de clientes; sem client_id, é o próprio
	clientID := req.ClientID
	if clientID == 0 {
		clientID = userID
	}

	ap, err := h.createUC.Execute(c.Request.Context(), domain.CreateInput{
		ClientID:  clientID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		StartTime: start,
		Notes:     req.Notes,
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST (filtrada por papel, com nomes denormalizados)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	q := h.db.
		Preload("Client").
		Preload("Barber.User").
		Preload("Service")

	switch role {
	case models.RoleClient:
		q = q.Where("client_id = ?", userID)

	case models.RoleBarber:
		var barber models.Barber
		if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
			c.JSON(http.StatusOK, []AppointmentListDTO{})
			return
		}
		q = q.Where("barber_id = ?", barber.ID)

		// admin vê tudo
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			ClientName:  ap.Client.Name,
			BarberName:  ap.Barber.User.Name,
			ServiceName: ap.Service.Name,
			ScheduledAt: ap.StartTime,
			EndTime:     ap.EndTime,
			DurationMin: ap.DurationMin,
			Status:      ap.Status,
			TotalPrice:  ap.TotalPrice,
			Notes:       ap.Notes,
			CreatedAt:   ap.CreatedAt,
			UpdatedAt:   ap.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status obrigatório.")
		return
	}

	ap, err := h.statusUC.Execute(
		c.Request.Context(),
		ucAppointment.Actor{UserID: userID, Role: role},
		uint(id),
		req.Status,
	)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status atualizado para " + ap.Status,
		"status":  ap.Status,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Identificador inválido.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	granularity := 0
	if g := c.Query("granularity"); g != "" {
		granularity, err = strconv.Atoi(g)
		if err != nil || granularity <= 0 {
			httperr.BadRequest(c, "invalid_granularity", "Granularidade inválida.")
			return
		}
	}

	var barber models.Barber
	if err := h.db.First(&barber, uint(barberID)).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:       barber.ID,
		Date:           date,
		GranularityMin: granularity,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Erro ao calcular disponibilidade.")
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{"available_slots": out})
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *AppointmentHandler) writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case "service_not_found", "barber_not_found", "appointment_not_found":
		httperr.NotFound(c, code, "Recurso não encontrado.")
	case "time_conflict":
		httperr.BadRequest(c, code, "Conflito de horário.")
	case "outside_working_hours":
		httperr.BadRequest(c, code, "Fora do horário de atendimento.")
	case "in_the_past":
		httperr.BadRequest(c, code, "Horário no passado.")
	case "invalid_status":
		httperr.BadRequest(c, code, "Status inválido.")
	case "forbidden":
		httperr.Forbidden(c, code, "Sem permissão.")
	default:
		httperr.BadRequest(c, code, "Operação inválida.")
	}
}
