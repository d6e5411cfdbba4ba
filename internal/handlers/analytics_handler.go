package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/clock"
	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/models"
)

// AnalyticsHandler calcula os painéis administrativos direto no banco.
// Todas as rotas exigem role admin (ver routes).
type AnalyticsHandler struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewAnalyticsHandler(db *gorm.DB, clk clock.Clock) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, clk: clk}
}

// ======================================================
// HELPERS
// ======================================================

// period resolve start_date / end_date (YYYY-MM-DD), padrão últimos 30 dias.
func (h *AnalyticsHandler) period(c *gin.Context) (time.Time, time.Time, bool) {
	end := h.clk.Now()
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "end_date inválida. Use YYYY-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		// inclui o dia inteiro
		end = t.Add(24*time.Hour - time.Second)
	}

	start := end.AddDate(0, 0, -30)
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "start_date inválida. Use YYYY-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		start = t
	}

	return start, end, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ======================================================
// BUSINESS METRICS — visão geral do período
// ======================================================

type popularServiceRow struct {
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Bookings    int64   `json:"bookings"`
	Revenue     float64 `json:"revenue"`
}

type topBarberRow struct {
	BarberID      uint    `json:"barber_id"`
	BarberName    string  `json:"barber_name"`
	Appointments  int64   `json:"appointments"`
	Revenue       float64 `json:"revenue"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

func (h *AnalyticsHandler) BusinessMetrics(c *gin.Context) {
	start, end, ok := h.period(c)
	if !ok {
		return
	}

	var totals struct {
		Total     int64
		Completed int64
		Cancelled int64
		Revenue   float64
	}
	h.db.Model(&models.Appointment{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS revenue`).
		Scan(&totals)

	var reviews struct {
		Total int64
		Avg   float64
	}
	h.db.Model(&models.Review{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS avg").
		Scan(&reviews)

	// clientes novos x recorrentes: quem agendou no período e já tinha
	// (ou não) agendamento antes do início dele
	var clients struct {
		NewClients       int64
		ReturningClients int64
	}
	h.db.Raw(`SELECT
			COUNT(*) FILTER (WHERE NOT prev) AS new_clients,
			COUNT(*) FILTER (WHERE prev) AS returning_clients
		FROM (
			SELECT a.client_id,
				EXISTS (
					SELECT 1 FROM appointments p
					WHERE p.client_id = a.client_id AND p.created_at < ?
				) AS prev
			FROM appointments a
			WHERE a.created_at BETWEEN ? AND ?
			GROUP BY a.client_id
		) c`, start, start, end).Scan(&clients)

	var popular []popularServiceRow
	h.db.Raw(`SELECT s.id AS service_id, s.name AS service_name,
			COUNT(a.id) AS bookings,
			COALESCE(SUM(a.total_price) FILTER (WHERE a.status = 'completed'), 0) AS revenue
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.created_at BETWEEN ? AND ?
		GROUP BY s.id, s.name
		ORDER BY bookings DESC
		LIMIT 5`, start, end).Scan(&popular)

	var topBarbers []topBarberRow
	h.db.Raw(`SELECT b.id AS barber_id, u.name AS barber_name,
			COUNT(a.id) AS appointments,
			COALESCE(SUM(a.total_price), 0) AS revenue,
			COALESCE(r.avg_rating, 0) AS average_rating,
			COALESCE(r.total, 0) AS total_reviews
		FROM appointments a
		JOIN barbers b ON b.id = a.barber_id
		JOIN users u ON u.id = b.user_id
		LEFT JOIN (
			SELECT barber_id, AVG(rating) AS avg_rating, COUNT(*) AS total
			FROM reviews
			WHERE created_at BETWEEN ? AND ?
			GROUP BY barber_id
		) r ON r.barber_id = b.id
		WHERE a.status = 'completed' AND a.created_at BETWEEN ? AND ?
		GROUP BY b.id, u.name, r.avg_rating, r.total
		ORDER BY revenue DESC
		LIMIT 5`, start, end, start, end).Scan(&topBarbers)

	for i := range topBarbers {
		topBarbers[i].AverageRating = round1(topBarbers[i].AverageRating)
	}
	if popular == nil {
		popular = []popularServiceRow{}
	}
	if topBarbers == nil {
		topBarbers = []topBarberRow{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_appointments":     totals.Total,
		"completed_appointments": totals.Completed,
		"cancelled_appointments": totals.Cancelled,
		"total_revenue":          totals.Revenue,
		"average_rating":         round1(reviews.Avg),
		"total_reviews":          reviews.Total,
		"new_clients":            clients.NewClients,
		"returning_clients":      clients.ReturningClients,
		"popular_services":       popular,
		"top_barbers":            topBarbers,
		"period_start":           start.Format(time.RFC3339),
		"period_end":             end.Format(time.RFC3339),
	})
}

// ======================================================
// BARBER PERFORMANCE — por barbeiro, com retenção de clientes
// ======================================================

type barberPerformanceRow struct {
	BarberID              uint    `json:"barber_id"`
	BarberName            string  `json:"barber_name"`
	TotalAppointments     int64   `json:"total_appointments"`
	CompletedAppointments int64   `json:"completed_appointments"`
	TotalRevenue          float64 `json:"total_revenue"`
	AverageRating         float64 `json:"average_rating"`
	TotalReviews          int64   `json:"total_reviews"`
	Specialties           string  `json:"specialties"`
	ClientRetentionRate   float64 `json:"client_retention_rate"`
}

func (h *AnalyticsHandler) BarberPerformance(c *gin.Context) {
	start, end, ok := h.period(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := h.db.Preload("User").Where("active = ?", true).Find(&barbers).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao buscar barbeiros.")
		return
	}

	out := make([]barberPerformanceRow, 0, len(barbers))
	for _, b := range barbers {
		var ap struct {
			Total     int64
			Completed int64
			Revenue   float64
		}
		h.db.Model(&models.Appointment{}).
			Where("barber_id = ? AND created_at BETWEEN ? AND ?", b.ID, start, end).
			Select(`COUNT(*) AS total,
				COUNT(*) FILTER (WHERE status = 'completed') AS completed,
				COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS revenue`).
			Scan(&ap)

		var rv struct {
			Total int64
			Avg   float64
		}
		h.db.Model(&models.Review{}).
			Where("barber_id = ? AND created_at BETWEEN ? AND ?", b.ID, start, end).
			Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS avg").
			Scan(&rv)

		// retenção: fração dos clientes do período que já tinham vindo antes
		var ret struct {
			Clients          int64
			ReturningClients int64
		}
		h.db.Raw(`SELECT COUNT(*) AS clients,
				COUNT(*) FILTER (WHERE prev) AS returning_clients
			FROM (
				SELECT a.client_id,
					EXISTS (
						SELECT 1 FROM appointments p
						WHERE p.client_id = a.client_id
						  AND p.barber_id = a.barber_id
						  AND p.created_at < ?
					) AS prev
				FROM appointments a
				WHERE a.barber_id = ? AND a.created_at BETWEEN ? AND ?
				GROUP BY a.client_id, a.barber_id
			) c`, start, b.ID, start, end).Scan(&ret)

		rate := 0.0
		if ret.Clients > 0 {
			rate = float64(ret.ReturningClients) / float64(ret.Clients) * 100
		}

		out = append(out, barberPerformanceRow{
			BarberID:              b.ID,
			BarberName:            b.User.Name,
			TotalAppointments:     ap.Total,
			CompletedAppointments: ap.Completed,
			TotalRevenue:          ap.Revenue,
			AverageRating:         round1(rv.Avg),
			TotalReviews:          rv.Total,
			Specialties:           b.Specialties,
			ClientRetentionRate:   round1(rate),
		})
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// SERVICE ANALYTICS — por serviço ativo, ranque por bookings
// ======================================================

type serviceAnalyticsRow struct {
	ServiceID       uint    `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	TotalBookings   int64   `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int64   `json:"total_reviews"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	PopularityRank  int     `json:"popularity_rank"`
}

func (h *AnalyticsHandler) ServiceAnalytics(c *gin.Context) {
	start, end, ok := h.period(c)
	if !ok {
		return
	}

	var rows []serviceAnalyticsRow
	h.db.Raw(`SELECT s.id AS service_id, s.name AS service_name,
			s.duration_min AS duration_minutes, s.price AS price,
			COALESCE(a.total, 0) AS total_bookings,
			COALESCE(a.revenue, 0) AS total_revenue,
			COALESCE(r.avg_rating, 0) AS average_rating,
			COALESCE(r.total, 0) AS total_reviews
		FROM services s
		LEFT JOIN (
			SELECT service_id, COUNT(*) AS total,
				COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS revenue
			FROM appointments
			WHERE created_at BETWEEN ? AND ?
			GROUP BY service_id
		) a ON a.service_id = s.id
		LEFT JOIN (
			SELECT service_id, AVG(rating) AS avg_rating, COUNT(*) AS total
			FROM reviews
			WHERE created_at BETWEEN ? AND ?
			GROUP BY service_id
		) r ON r.service_id = s.id
		WHERE s.active = true
		ORDER BY total_bookings DESC, s.name ASC`, start, end, start, end).Scan(&rows)

	for i := range rows {
		rows[i].PopularityRank = i + 1
		rows[i].AverageRating = round1(rows[i].AverageRating)
	}
	if rows == nil {
		rows = []serviceAnalyticsRow{}
	}

	c.JSON(http.StatusOK, rows)
}

// ======================================================
// REVENUE CHART — receita diária dos últimos N dias
// ======================================================

func (h *AnalyticsHandler) RevenueChart(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 365 {
			httperr.BadRequest(c, "invalid_days", "days deve ser um inteiro entre 1 e 365.")
			return
		}
		days = v
	}

	end := h.clk.Now()
	start := end.AddDate(0, 0, -days)

	type dayRow struct {
		Day     time.Time
		Revenue float64
	}
	var rows []dayRow
	h.db.Model(&models.Appointment{}).
		Where("status = ? AND start_time BETWEEN ? AND ?", string(domain.StatusCompleted), start, end).
		Select("date_trunc('day', start_time) AS day, SUM(total_price) AS revenue").
		Group("date_trunc('day', start_time)").
		Scan(&rows)

	revenueByDay := make(map[string]float64, len(rows))
	total := 0.0
	for _, r := range rows {
		revenueByDay[r.Day.Format("2006-01-02")] = r.Revenue
		total += r.Revenue
	}

	// preenche os dias sem receita com zero para o gráfico ficar contínuo
	chart := make([]gin.H, 0, days+1)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		key := cur.Format("2006-01-02")
		chart = append(chart, gin.H{
			"date":     key,
			"revenue":  revenueByDay[key],
			"day_name": cur.Weekday().String(),
		})
	}

	avg := 0.0
	if len(chart) > 0 {
		avg = total / float64(len(chart))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":          chart,
		"total_revenue": total,
		"average_daily": avg,
		"period_days":   days,
	})
}
