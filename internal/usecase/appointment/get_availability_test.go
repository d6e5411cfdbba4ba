package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
)

func setupAvailability() (*fakeRepo, *GetAvailability, *CreateAppointment) {
	repo := newFakeRepo()
	repo.addService(1, 30, 50.0)
	repo.addBarber(1, 10)
	repo.addWorkingHours(1, "monday", "09:00", "17:00")

	clk := clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return repo, NewGetAvailability(repo, clk), NewCreateAppointment(repo, clk, nil, nil)
}

func TestGetAvailability_FullDay(t *testing.T) {
	_, uc, _ := setupAvailability()

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     monday(0, 0),
	})

	assert.NoError(t, err)
	// 09:00 .. 16:30 em passos de 30min — o slot das 17:00 não existe
	// porque não caberia antes do fechamento
	assert.Len(t, slots, 16)
	assert.Equal(t, monday(9, 0), slots[0])
	assert.Equal(t, monday(16, 30), slots[len(slots)-1])
}

func TestGetAvailability_BookingBlocksOverlappingSlots(t *testing.T) {
	repo, uc, _ := setupAvailability()

	// ocupação de 10:00 a 10:45 (serviço de 45 minutos)
	repo.addService(2, 45, 80.0)
	clk := clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	create := NewCreateAppointment(repo, clk, nil, nil)

	_, err := create.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 2, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     monday(0, 0),
	})
	assert.NoError(t, err)

	// 10:00 e 10:30 caem dentro da ocupação; 11:00 está livre
	assert.NotContains(t, slots, monday(10, 0))
	assert.NotContains(t, slots, monday(10, 30))
	assert.Contains(t, slots, monday(11, 0))
	assert.Len(t, slots, 14)

	// com granularidade de 15min, 10:45 já aparece livre
	fine, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:       1,
		Date:           monday(0, 0),
		GranularityMin: 15,
	})
	assert.NoError(t, err)
	assert.NotContains(t, fine, monday(10, 30))
	assert.Contains(t, fine, monday(10, 45))
}

func TestGetAvailability_Idempotent(t *testing.T) {
	_, uc, create := setupAvailability()

	_, err := create.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(14, 0),
	})
	assert.NoError(t, err)

	in := domain.AvailabilityInput{BarberID: 1, Date: monday(0, 0)}

	first, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)

	second, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)

	// sem escrita no meio, a grade é estável
	assert.Equal(t, first, second)
}

func TestGetAvailability_DayWithoutSchedule(t *testing.T) {
	_, uc, _ := setupAvailability()

	// terça não tem linha de expediente
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_PastSlotsFilteredOut(t *testing.T) {
	repo, _, _ := setupAvailability()

	// relógio no meio da própria segunda-feira, 12:10
	clk := clock.Fixed{T: monday(12, 10)}
	uc := NewGetAvailability(repo, clk)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     monday(0, 0),
	})

	assert.NoError(t, err)
	assert.NotContains(t, slots, monday(12, 0))
	assert.Equal(t, monday(12, 30), slots[0])
}

func TestGetAvailability_CancelledFreesSlot(t *testing.T) {
	repo, uc, create := setupAvailability()

	clk := clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	status := NewUpdateStatus(repo, clk, nil, nil)

	ap, err := create.Execute(context.Background(), domain.CreateInput{
		ClientID: 100, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)

	before, _ := uc.Execute(context.Background(), domain.AvailabilityInput{BarberID: 1, Date: monday(0, 0)})
	assert.NotContains(t, before, monday(10, 0))

	_, err = status.Execute(
		context.Background(),
		Actor{UserID: 100, Role: "client"},
		ap.ID,
		string(domain.StatusCancelled),
	)
	assert.NoError(t, err)

	after, _ := uc.Execute(context.Background(), domain.AvailabilityInput{BarberID: 1, Date: monday(0, 0)})
	assert.Contains(t, after, monday(10, 0))

	// e o horário pode ser reservado de novo
	_, err = create.Execute(context.Background(), domain.CreateInput{
		ClientID: 200, BarberID: 1, ServiceID: 1, StartTime: monday(10, 0),
	})
	assert.NoError(t, err)
}
