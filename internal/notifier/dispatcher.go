package notifier

import (
	"context"
	"log"

	"github.com/ajoca/Barberia/internal/models"
)

type Event struct {
	Appointment models.Appointment
	Type        string
}

// Dispatcher desacopla o caminho de reserva do fan-out de notificações,
// no mesmo formato do dispatcher de auditoria: canal com buffer + worker.
type Dispatcher struct {
	service *Service
	queue   chan Event
}

func NewDispatcher(service *Service) *Dispatcher {
	d := &Dispatcher{
		service: service,
		queue:   make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ap := ev.Appointment
		d.service.NotifyAppointmentEvent(context.Background(), &ap, ev.Type)
	}
}

// Dispatch é nil-safe, como a fila de WhatsApp.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → notificação é best-effort, descartamos
		log.Println("notifier queue full, dropping event")
	}
}
