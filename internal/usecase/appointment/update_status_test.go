package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
)

func setupStatus(t *testing.T) (*fakeRepo, *UpdateStatus, *models.Appointment) {
	t.Helper()

	repo := newFakeRepo()
	repo.addService(1, 30, 50.0)
	repo.addBarber(1, 10)
	repo.addWorkingHours(1, "monday", "09:00", "17:00")

	clk := clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	create := NewCreateAppointment(repo, clk, nil, nil)
	ap, err := create.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)

	return repo, NewUpdateStatus(repo, clk, nil, nil), ap
}

func TestUpdateStatus_ClientOwnerCanCancel(t *testing.T) {
	repo, uc, ap := setupStatus(t)

	updated, err := uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"cancelled",
	)

	assert.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "cancelled", stored.Status)
}

func TestUpdateStatus_BarberOfAppointmentCanConfirm(t *testing.T) {
	// o barbeiro é resolvido pelo user_id do token
	_, uc, ap := setupStatus(t)

	updated, err := uc.Execute(
		context.Background(),
		Actor{UserID: 10, Role: models.RoleBarber},
		ap.ID,
		"confirmed",
	)

	assert.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
}

func TestUpdateStatus_AdminCanComplete(t *testing.T) {
	_, uc, ap := setupStatus(t)

	updated, err := uc.Execute(
		context.Background(),
		Actor{UserID: 999, Role: models.RoleAdmin},
		ap.ID,
		"completed",
	)

	assert.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
}

func TestUpdateStatus_OtherClientForbidden(t *testing.T) {
	repo, uc, ap := setupStatus(t)

	_, err := uc.Execute(
		context.Background(),
		Actor{UserID: 200, Role: models.RoleClient},
		ap.ID,
		"cancelled",
	)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))

	// barbeiro de outro perfil também não
	repo.addBarber(2, 20)
	_, err = uc.Execute(
		context.Background(),
		Actor{UserID: 20, Role: models.RoleBarber},
		ap.ID,
		"confirmed",
	)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}

func TestUpdateStatus_ConfirmDoesNotConflictWithItself(t *testing.T) {
	// pending -> confirmed re-checa a agenda, mas o próprio registro
	// (ainda pending, segurando o horário) fica fora da checagem
	_, uc, ap := setupStatus(t)

	updated, err := uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"confirmed",
	)

	assert.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
}

func TestUpdateStatus_ReactivateIntoTakenSlotConflicts(t *testing.T) {
	repo, uc, ap := setupStatus(t)

	// cliente cancela, o horário volta para a grade
	_, err := uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"cancelled",
	)
	assert.NoError(t, err)

	// outro cliente toma o mesmo intervalo
	clk := clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	create := NewCreateAppointment(repo, clk, nil, nil)
	_, err = create.Execute(context.Background(), domain.CreateInput{
		ClientID: 200, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)

	// reativar o primeiro agendamento agora falha
	_, err = uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"pending",
	)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "cancelled", stored.Status)
}

func TestUpdateStatus_ReactivateFreeSlot(t *testing.T) {
	repo, uc, ap := setupStatus(t)

	_, err := uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"cancelled",
	)
	assert.NoError(t, err)

	// ninguém tomou o horário: a reativação passa
	updated, err := uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"pending",
	)
	assert.NoError(t, err)
	assert.Equal(t, "pending", updated.Status)

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "pending", stored.Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	_, uc, ap := setupStatus(t)

	_, err := uc.Execute(
		context.Background(),
		Actor{UserID: 100, Role: models.RoleClient},
		ap.ID,
		"scheduled",
	)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateStatus_AppointmentNotFound(t *testing.T) {
	_, uc, _ := setupStatus(t)

	_, err := uc.Execute(
		context.Background(),
		Actor{UserID: 999, Role: models.RoleAdmin},
		12345,
		"confirmed",
	)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
