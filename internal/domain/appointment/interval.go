package appointment

import (
	"strings"
	"time"

	"github.com/ajoca/Barberia/internal/models"
)

const (
	// DefaultSlotGranularityMin é o passo padrão da grade de horários.
	DefaultSlotGranularityMin = 30

	// DefaultServiceDurationMin é usado quando a duração de um
	// agendamento existente não pode ser resolvida. Um default explícito
	// evita falso negativo na detecção de conflito.
	DefaultServiceDurationMin = 60
)

// Overlaps aplica a regra de intervalo meio-aberto [a,b) x [c,d):
// conflito se a < d && c < b. Horários encostados não conflitam,
// permitindo agendamentos de costas um para o outro.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OccupiedEnd resolve o fim do intervalo ocupado por um agendamento:
// o EndTime persistido, senão o snapshot de duração, senão o default.
func OccupiedEnd(ap *models.Appointment) time.Time {
	if ap.EndTime.After(ap.StartTime) {
		return ap.EndTime
	}

	d := ap.DurationMin
	if d <= 0 {
		d = DefaultServiceDurationMin
	}
	return ap.StartTime.Add(time.Duration(d) * time.Minute)
}

// WeekdayKey resolve a chave canônica do dia da semana: o nome completo
// em inglês, minúsculo ("monday"). Contrato de string que os chamadores
// precisam respeitar exatamente.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// Weekdays na ordem canônica da agenda semanal.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

func IsValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
