package appointment

import (
	"context"
	"time"

	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
)

type GetAvailability struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewGetAvailability(repo domain.Repository, clk clock.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clk: clk}
}

// Execute gera os horários livres de um barbeiro num dia. Função pura do
// estado do banco + "agora": duas chamadas seguidas sem escrita no meio
// devolvem a mesma sequência.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]time.Time, error) {

	granularity := in.GranularityMin
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMin
	}
	step := time.Duration(granularity) * time.Minute

	// 1. Janela de expediente do dia (chave = nome do dia minúsculo)
	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, domain.WeekdayKey(in.Date))
	if err != nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []time.Time{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayOpen := parseHM(wh.StartTime)
	dayClose := parseHM(wh.EndTime)

	// 2. Intervalos ocupados do dia (pending/confirmed)
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListActiveForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := uc.clk.Now()

	// 3. Caminha a grade de open a close no passo da granularidade.
	// O slot precisa caber antes do fechamento — a granularidade é a
	// unidade mínima reservável, não a duração do serviço pedido.
	slots := []time.Time{}

	for cur := dayOpen; !cur.Add(step).After(dayClose); cur = cur.Add(step) {

		slotStart := cur
		slotEnd := cur.Add(step)

		if !slotStart.After(now) {
			continue
		}

		conflict := false
		for _, ap := range appointments {
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, domain.OccupiedEnd(&ap)) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, slotStart)
		}
	}

	return slots, nil
}
