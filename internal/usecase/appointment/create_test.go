package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
)

// Cenário padrão: barbeiro 1 (usuário 10) atende segunda-feira das
// 09:00 às 17:00; corte de 30 minutos. 2026-03-02 é uma segunda.
func setupCreate() (*fakeRepo, *CreateAppointment) {
	repo := newFakeRepo()
	repo.addService(1, 30, 50.0)
	repo.addBarber(1, 10)
	repo.addWorkingHours(1, "monday", "09:00", "17:00")

	clk := clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := NewCreateAppointment(repo, clk, nil, nil)
	return repo, uc
}

func monday(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestCreateAppointment_Success(t *testing.T) {
	_, uc := setupCreate()

	ap, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID:  100,
		BarberID:  1,
		ServiceID: 1,
		StartTime: monday(10, 0),
		Notes:     "sem máquina",
	})

	assert.NoError(t, err)
	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, monday(10, 0), ap.StartTime)
	assert.Equal(t, monday(10, 30), ap.EndTime)
	assert.Equal(t, 30, ap.DurationMin)
	assert.Equal(t, 50.0, ap.TotalPrice)
	assert.Equal(t, "sem máquina", ap.Notes)
}

func TestCreateAppointment_TimeConflict(t *testing.T) {
	_, uc := setupCreate()

	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)

	// mesmo horário, outro cliente
	_, err = uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 200, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// sobreposição parcial também conflita
	_, err = uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 200, BarberID: 1, ServiceID: 1, StartTime: monday(10, 15),
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateAppointment_BackToBackAllowed(t *testing.T) {
	_, uc := setupCreate()

	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)

	// começa exatamente quando o anterior termina
	ap, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 200, BarberID: 1, ServiceID: 1, StartTime: monday(10, 30),
	})
	assert.NoError(t, err)
	assert.Equal(t, monday(10, 30), ap.StartTime)
}

func TestCreateAppointment_InThePast(t *testing.T) {
	repo, _ := setupCreate()

	// relógio já dentro da segunda-feira
	clk := clock.Fixed{T: monday(12, 0)}
	uc := NewCreateAppointment(repo, clk, nil, nil)

	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(11, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))

	// "agora" exato também não vale
	_, err = uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(12, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	_, uc := setupCreate()

	// antes de abrir
	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(8, 30),
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	// termina depois de fechar (16:45 + 30min > 17:00)
	_, err = uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(16, 45),
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	// último encaixe possível do dia
	_, err = uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(16, 30),
	})
	assert.NoError(t, err)

	// dia sem expediente (terça)
	_, err = uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1,
		StartTime: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateAppointment_ServiceNotFound(t *testing.T) {
	_, uc := setupCreate()

	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 99, StartTime: monday(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointment_BarberNotFound(t *testing.T) {
	_, uc := setupCreate()

	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 99, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestCreateAppointment_InvalidServiceDuration(t *testing.T) {
	repo, uc := setupCreate()
	repo.addService(2, 0, 30.0)

	_, err := uc.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 2, StartTime: monday(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_service_duration"))
}

// Duas goroutines disputando o mesmo horário: exatamente uma vence,
// a outra recebe time_conflict.
func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	_, uc := setupCreate()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), domain.CreateInput{
				ClientID:  uint(100 + i),
				BarberID:  1,
				ServiceID: 1,
				StartTime: monday(10, 0),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	conflicts := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else if httperr.IsBusiness(err, "time_conflict") {
			conflicts++
		}
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, conflicts)
}
