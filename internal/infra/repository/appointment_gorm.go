package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", id).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetBarberByUserID(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday string,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) IsWithinWorkingHours(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	wh, err := r.GetWorkingHours(ctx, barberID, domain.WeekdayKey(start))
	if err != nil {
		return false, nil
	}

	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false, nil
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			start.Location(),
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	return true, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateWithConflictCheck serializa check + insert para o mesmo barbeiro:
// o SELECT ... FOR UPDATE trava as linhas ativas dentro da transação, e a
// exclusion constraint do banco segura qualquer caminho que escape do lock.
func (r *AppointmentGormRepository) CreateWithConflictCheck(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID, domain.ActiveStatuses, ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}

	return err
}

func (r *AppointmentGormRepository) HasConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID *uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.ActiveStatuses, end, start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "duration_min").
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			barberID, domain.ActiveStatuses, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
