package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/notifier"
)

type NotificationHandler struct {
	db      *gorm.DB
	service *notifier.Service
}

func NewNotificationHandler(db *gorm.DB, service *notifier.Service) *NotificationHandler {
	return &NotificationHandler{db: db, service: service}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Where("user_id = ?", userID)
	if c.Query("unread_only") == "true" {
		q = q.Where("is_read = false")
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_notification_id", "Identificador inválido.")
		return
	}

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", uint(id), userID).
		Update("is_read", true)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar como lida.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notificação marcada como lida."})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error; err != nil {
		httperr.Internal(c, "failed_to_mark_all_read", "Erro ao marcar notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todas as notificações marcadas como lidas."})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var count int64
	h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_notification_id", "Identificador inválido.")
		return
	}

	res := h.db.Where("id = ? AND user_id = ?", uint(id), userID).
		Delete(&models.Notification{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_notification", "Erro ao excluir notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notificação excluída."})
}

// SendTest existe para validar a ponta-a-ponta de notificações em
// ambientes de homologação (admin).
func (h *NotificationHandler) SendTest(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	err := h.service.CreateNotification(
		c.Request.Context(),
		userID,
		notifier.EventAppointmentReminder,
		map[string]string{
			"service_name": "Corte de Cabelo",
			"barber_name":  "Barbeiro Teste",
			"time":         "10:00",
		},
		nil,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_send_test", "Erro ao enviar notificação de teste.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notificação de teste enviada."})
}
