package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ajoca/Barberia/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	// sobreposição parcial
	assert.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 30), at(11, 30)))
	assert.True(t, Overlaps(at(10, 30), at(11, 30), at(10, 0), at(11, 0)))

	// contenção total
	assert.True(t, Overlaps(at(10, 0), at(12, 0), at(10, 30), at(11, 0)))
	assert.True(t, Overlaps(at(10, 30), at(11, 0), at(10, 0), at(12, 0)))

	// intervalos idênticos
	assert.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 0), at(11, 0)))

	// disjuntos
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(11, 0), at(12, 0)))
}

func TestOverlaps_BackToBack(t *testing.T) {
	// [10:00, 10:30) e [10:30, 11:00) encostam mas não conflitam
	assert.False(t, Overlaps(at(10, 0), at(10, 30), at(10, 30), at(11, 0)))
	assert.False(t, Overlaps(at(10, 30), at(11, 0), at(10, 0), at(10, 30)))
}

func TestOccupiedEnd_PersistedEndTime(t *testing.T) {
	ap := &models.Appointment{
		StartTime:   at(10, 0),
		EndTime:     at(10, 45),
		DurationMin: 30, // EndTime persistido vence o snapshot
	}
	assert.Equal(t, at(10, 45), OccupiedEnd(ap))
}

func TestOccupiedEnd_DurationSnapshot(t *testing.T) {
	ap := &models.Appointment{
		StartTime:   at(10, 0),
		DurationMin: 45,
	}
	assert.Equal(t, at(10, 45), OccupiedEnd(ap))
}

func TestOccupiedEnd_DefaultDuration(t *testing.T) {
	// sem EndTime e sem snapshot de duração, assume 60 minutos
	ap := &models.Appointment{StartTime: at(10, 0)}
	assert.Equal(t, at(11, 0), OccupiedEnd(ap))
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "monday", WeekdayKey(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sunday", WeekdayKey(time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, "saturday", WeekdayKey(time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)))
}

func TestIsValidWeekday(t *testing.T) {
	for _, d := range Weekdays {
		assert.True(t, IsValidWeekday(d), d)
	}

	assert.False(t, IsValidWeekday("Monday"))
	assert.False(t, IsValidWeekday("segunda"))
	assert.False(t, IsValidWeekday(""))
}
