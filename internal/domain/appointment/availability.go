package appointment

import "time"

type AvailabilityInput struct {
	BarberID       uint
	Date           time.Time
	GranularityMin int // 0 => DefaultSlotGranularityMin
}

type CreateInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint
	StartTime time.Time
	Notes     string
}
