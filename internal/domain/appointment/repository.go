package appointment

import (
	"context"
	"time"

	"github.com/ajoca/Barberia/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetBarberByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday string,
	) (*models.WorkingHours, error)

	IsWithinWorkingHours(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Appointment (create / conflict) --------

	// CreateWithConflictCheck executa a checagem de conflito e o insert
	// dentro da mesma transação, serializada por barbeiro. Retorna
	// ErrBusiness("time_conflict") quando o intervalo já está ocupado.
	CreateWithConflictCheck(
		ctx context.Context,
		ap *models.Appointment,
	) error

	HasConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID *uint,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListActiveForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
