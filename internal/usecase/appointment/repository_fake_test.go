package appointment

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
)

// fakeRepo é um repositório em memória com a mesma semântica do gorm:
// o mutex em CreateWithConflictCheck faz o papel do SELECT ... FOR UPDATE,
// serializando check + insert.
type fakeRepo struct {
	mu sync.Mutex

	services     map[uint]*models.Service
	barbers      map[uint]*models.Barber
	hours        map[uint]map[string]*models.WorkingHours
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		barbers:      map[uint]*models.Barber{},
		hours:        map[uint]map[string]*models.WorkingHours{},
		appointments: map[uint]*models.Appointment{},
	}
}

// --------------------------------------------------
// Seeds
// --------------------------------------------------

func (r *fakeRepo) addService(id uint, durationMin int, price float64) {
	r.services[id] = &models.Service{
		ID:          id,
		Name:        "Corte",
		DurationMin: durationMin,
		Price:       price,
		Active:      true,
	}
}

func (r *fakeRepo) addBarber(id, userID uint) {
	r.barbers[id] = &models.Barber{ID: id, UserID: userID, Active: true}
}

func (r *fakeRepo) addWorkingHours(barberID uint, weekday, start, end string) {
	if r.hours[barberID] == nil {
		r.hours[barberID] = map[string]*models.WorkingHours{}
	}
	r.hours[barberID][weekday] = &models.WorkingHours{
		BarberID:  barberID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
}

// --------------------------------------------------
// domain.Repository
// --------------------------------------------------

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || !s.Active {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := r.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetBarberByUserID(_ context.Context, userID uint) (*models.Barber, error) {
	for _, b := range r.barbers {
		if b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, barberID uint, weekday string) (*models.WorkingHours, error) {
	wh, ok := r.hours[barberID][weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *wh
	return &cp, nil
}

func (r *fakeRepo) IsWithinWorkingHours(ctx context.Context, barberID uint, start, end time.Time) (bool, error) {
	wh, err := r.GetWorkingHours(ctx, barberID, domain.WeekdayKey(start))
	if err != nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
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

	if start.Before(parseHM(wh.StartTime)) || end.After(parseHM(wh.EndTime)) {
		return false, nil
	}
	return true, nil
}

func (r *fakeRepo) CreateWithConflictCheck(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.BarberID != ap.BarberID || !domain.Holding(existing.Status) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, existing.StartTime, domain.OccupiedEnd(existing)) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) HasConflict(_ context.Context, barberID uint, start, end time.Time, excludeID *uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.BarberID != barberID || !domain.Holding(ap.Status) {
			continue
		}
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, domain.OccupiedEnd(ap)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListActiveForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || !domain.Holding(ap.Status) {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
