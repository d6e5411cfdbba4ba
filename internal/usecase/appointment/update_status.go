package appointment

import (
	"context"

	"github.com/ajoca/Barberia/internal/audit"
	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/notifier"
)

// Actor é quem está pedindo a mudança de status.
type Actor struct {
	UserID uint
	Role   string
}

type UpdateStatus struct {
	repo     domain.Repository
	clk      clock.Clock
	audit    *audit.Dispatcher
	notifier *notifier.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	notifierDispatcher *notifier.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		clk:      clk,
		audit:    auditDispatcher,
		notifier: notifierDispatcher,
	}
}

// Execute aceita qualquer um dos quatro status vindos de um ator
// autorizado (admin, cliente dono ou barbeiro da cita) — só o
// pertencimento ao conjunto é validado. Transições para um status ativo
// re-disputam o horário: o intervalo pode ter sido tomado enquanto o
// agendamento estava cancelado.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.authorize(ctx, actor, ap); err != nil {
		return nil, err
	}

	// Voltar a ocupar a agenda exige o intervalo livre. O próprio
	// registro é excluído da checagem para pending -> confirmed não
	// conflitar consigo mesmo.
	if domain.Holding(newStatus) {
		conflict, err := uc.repo.HasConflict(
			ctx,
			ap.BarberID,
			ap.StartTime,
			domain.OccupiedEnd(ap),
			&ap.ID,
		)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	ap.Status = newStatus
	now := uc.clk.Now()
	ap.UpdatedAt = &now

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": newStatus},
	})

	if ev := statusEvent(newStatus); ev != "" {
		uc.notifier.Dispatch(notifier.Event{
			Appointment: *ap,
			Type:        ev,
		})
	}

	return ap, nil
}

func (uc *UpdateStatus) authorize(
	ctx context.Context,
	actor Actor,
	ap *models.Appointment,
) error {

	switch actor.Role {
	case models.RoleAdmin:
		return nil

	case models.RoleClient:
		if ap.ClientID == actor.UserID {
			return nil
		}

	case models.RoleBarber:
		barber, err := uc.repo.GetBarberByUserID(ctx, actor.UserID)
		if err == nil && ap.BarberID == barber.ID {
			return nil
		}
	}

	return httperr.ErrBusiness("forbidden")
}

func statusEvent(status string) string {
	switch domain.Status(status) {
	case domain.StatusConfirmed:
		return notifier.EventAppointmentConfirmed
	case domain.StatusCancelled:
		return notifier.EventAppointmentCancelled
	case domain.StatusCompleted:
		return notifier.EventReviewRequest
	}
	return ""
}
