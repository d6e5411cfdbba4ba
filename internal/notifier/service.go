package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/models"
)

// Service materializa eventos de agendamento em notificações in-app e
// mensagens na fila de WhatsApp. Falhas aqui são logadas e engolidas —
// a reserva nunca depende da notificação.
type Service struct {
	db       *gorm.DB
	whatsapp *WhatsAppQueue
}

func NewService(db *gorm.DB, whatsapp *WhatsAppQueue) *Service {
	return &Service{db: db, whatsapp: whatsapp}
}

func (s *Service) CreateNotification(
	ctx context.Context,
	userID uint,
	eventType string,
	data map[string]string,
	appointmentID *uint,
) error {

	tpl, ok := DefaultTemplates[eventType]
	if !ok {
		return fmt.Errorf("template not found: %s", eventType)
	}

	payload := map[string]any{}
	for k, v := range data {
		payload[k] = v
	}
	if appointmentID != nil {
		payload["appointment_id"] = *appointmentID
	}
	raw, _ := json.Marshal(payload)

	n := models.Notification{
		UserID:  userID,
		Title:   tpl.Title,
		Message: Render(tpl.Message, data),
		Type:    eventType,
		Data:    string(raw),
	}

	return s.db.WithContext(ctx).Create(&n).Error
}

// NotifyAppointmentEvent resolve os colaboradores (cliente, barbeiro,
// serviço) e dispara o fan-out do evento. Dados não resolvidos abortam
// o fan-out com log, sem erro para o chamador.
func (s *Service) NotifyAppointmentEvent(ctx context.Context, ap *models.Appointment, eventType string) {
	var client models.User
	if err := s.db.WithContext(ctx).First(&client, ap.ClientID).Error; err != nil {
		log.Printf("notifier: client %d not found: %v", ap.ClientID, err)
		return
	}

	var barber models.Barber
	if err := s.db.WithContext(ctx).Preload("User").First(&barber, ap.BarberID).Error; err != nil {
		log.Printf("notifier: barber %d not found: %v", ap.BarberID, err)
		return
	}

	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, ap.ServiceID).Error; err != nil {
		log.Printf("notifier: service %d not found: %v", ap.ServiceID, err)
		return
	}

	data := map[string]string{
		"client_name":  client.Name,
		"barber_name":  barber.User.Name,
		"service_name": service.Name,
		"date":         ap.StartTime.Format("02/01/2006"),
		"time":         ap.StartTime.Format("15:04"),
		"price":        fmt.Sprintf("%.2f", ap.TotalPrice),
	}

	apID := ap.ID

	// Cliente
	switch eventType {
	case EventAppointmentCreated, EventAppointmentConfirmed, EventAppointmentCancelled, EventReviewRequest:
		if err := s.CreateNotification(ctx, client.ID, eventType, data, &apID); err != nil {
			log.Printf("notifier: create notification: %v", err)
		}
	}

	// Barbeiro recebe aviso de agendamento novo
	if eventType == EventAppointmentCreated {
		if err := s.CreateNotification(ctx, barber.UserID, EventBarberNewAppointment, data, &apID); err != nil {
			log.Printf("notifier: barber notification: %v", err)
		}
	}

	// WhatsApp para o cliente
	if client.Phone != "" && eventType != EventReviewRequest {
		s.sendWhatsApp(ctx, client.Phone, eventType, data, &apID)
	}
}

func (s *Service) sendWhatsApp(
	ctx context.Context,
	toPhone string,
	eventType string,
	data map[string]string,
	appointmentID *uint,
) {

	tpl, ok := DefaultTemplates[eventType]
	if !ok {
		return
	}

	msg := models.WhatsAppMessage{
		MessageID:     uuid.NewString(),
		ToPhone:       toPhone,
		Message:       Render(tpl.Message, data),
		TemplateType:  eventType,
		Status:        "pending",
		AppointmentID: appointmentID,
	}

	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		log.Printf("notifier: whatsapp log: %v", err)
		return
	}

	err := s.whatsapp.Push(ctx, OutboxPayload{
		MessageID:     msg.MessageID,
		ToPhone:       msg.ToPhone,
		Message:       msg.Message,
		TemplateType:  msg.TemplateType,
		AppointmentID: appointmentID,
	})
	if err != nil {
		log.Printf("notifier: whatsapp push: %v", err)
	}
}
