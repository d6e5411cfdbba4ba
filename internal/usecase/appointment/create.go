package appointment

import (
	"context"
	"time"

	"github.com/ajoca/Barberia/internal/audit"
	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/notifier"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	clk      clock.Clock
	audit    *audit.Dispatcher
	notifier *notifier.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	notifierDispatcher *notifier.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		clk:      clk,
		audit:    auditDispatcher,
		notifier: notifierDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Serviço (ativo) — duração e preço são snapshotados
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	// --------------------------------------------------
	// 2️⃣ Barbeiro
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Intervalo ocupado [start, start+duração)
	// --------------------------------------------------
	start := in.StartTime.UTC()
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	if !start.After(uc.clk.Now()) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	// --------------------------------------------------
	// 4️⃣ Expediente do barbeiro
	// --------------------------------------------------
	ok, err := uc.repo.IsWithinWorkingHours(ctx, barber.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 5️⃣ Conflito + insert na mesma transação
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    in.ClientID,
		BarberID:    barber.ID,
		ServiceID:   service.ID,
		StartTime:   start,
		EndTime:     end,
		DurationMin: service.DurationMin,
		Status:      string(domain.StatusPending),
		TotalPrice:  service.Price,
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateWithConflictCheck(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Eventos (best-effort)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifier.Dispatch(notifier.Event{
		Appointment: *ap,
		Type:        notifier.EventAppointmentCreated,
	})

	return ap, nil
}
