package handlers

import "time"

// Todos os instantes do sistema são UTC naive — sem timezone por loja.

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, time.UTC)
}

// parseInstant aceita RFC3339 completo ou "YYYY-MM-DD HH:MM".
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
}
