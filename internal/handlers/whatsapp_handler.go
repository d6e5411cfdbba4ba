package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/clock"
	domainap "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/notifier"
	"github.com/ajoca/Barberia/internal/validators"
)

// A entrega de WhatsApp é feita por uma ponte externa que consome a fila
// no Redis. Esta API só enfileira, loga e consulta.
type WhatsAppHandler struct {
	db    *gorm.DB
	queue *notifier.WhatsAppQueue
	clk   clock.Clock
}

func NewWhatsAppHandler(db *gorm.DB, queue *notifier.WhatsAppQueue, clk clock.Clock) *WhatsAppHandler {
	return &WhatsAppHandler{db: db, queue: queue, clk: clk}
}

func (h *WhatsAppHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.queue.Status(c.Request.Context()))
}

type SendMessageRequest struct {
	ToPhone string `json:"to_phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsPhoneValid(req.ToPhone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	msg := models.WhatsAppMessage{
		MessageID:    uuid.NewString(),
		ToPhone:      req.ToPhone,
		Message:      req.Message,
		TemplateType: "manual",
		Status:       "pending",
	}

	if err := h.db.Create(&msg).Error; err != nil {
		httperr.Internal(c, "failed_to_log_message", "Erro ao registrar mensagem.")
		return
	}

	err := h.queue.Push(c.Request.Context(), notifier.OutboxPayload{
		MessageID:    msg.MessageID,
		ToPhone:      msg.ToPhone,
		Message:      msg.Message,
		TemplateType: msg.TemplateType,
	})
	if err != nil {
		// best-effort: mensagem fica pendente no log para reenvio
		c.JSON(http.StatusAccepted, gin.H{
			"message":    "Mensagem registrada, fila indisponível.",
			"message_id": msg.MessageID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Mensagem enfileirada.",
		"message_id": msg.MessageID,
	})
}

func (h *WhatsAppHandler) Messages(c *gin.Context) {
	q := h.db.Model(&models.WhatsAppMessage{})

	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
	}

	var messages []models.WhatsAppMessage
	if err := q.Order("created_at DESC").Limit(100).Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Erro ao listar mensagens.")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Reminders lista agendamentos ativos nas próximas 24h, para a ponte
// disparar lembretes.
func (h *WhatsAppHandler) Reminders(c *gin.Context) {
	now := h.clk.Now()
	until := now.Add(24 * time.Hour)

	var aps []models.Appointment
	err := h.db.
		Preload("Client").
		Preload("Barber.User").
		Preload("Service").
		Where(
			"status IN ? AND start_time > ? AND start_time <= ?",
			domainap.ActiveStatuses, now, until,
		).
		Order("start_time ASC").
		Find(&aps).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_reminders", "Erro ao listar lembretes.")
		return
	}

	type reminder struct {
		AppointmentID uint      `json:"appointment_id"`
		ClientName    string    `json:"client_name"`
		ClientPhone   string    `json:"client_phone"`
		BarberName    string    `json:"barber_name"`
		ServiceName   string    `json:"service_name"`
		ScheduledAt   time.Time `json:"scheduled_at"`
	}

	out := make([]reminder, 0, len(aps))
	for _, ap := range aps {
		out = append(out, reminder{
			AppointmentID: ap.ID,
			ClientName:    ap.Client.Name,
			ClientPhone:   ap.Client.Phone,
			BarberName:    ap.Barber.User.Name,
			ServiceName:   ap.Service.Name,
			ScheduledAt:   ap.StartTime,
		})
	}

	c.JSON(http.StatusOK, out)
}
