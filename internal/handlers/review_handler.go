package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReviewRequest struct {
	AppointmentID  uint   `json:"appointment_id" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment"`
	ServiceQuality int    `json:"service_quality" binding:"required,min=1,max=5"`
	BarberSkill    int    `json:"barber_skill" binding:"required,min=1,max=5"`
	Cleanliness    int    `json:"cleanliness" binding:"required,min=1,max=5"`
	ValueForMoney  int    `json:"value_for_money" binding:"required,min=1,max=5"`
	WouldRecommend *bool  `json:"would_recommend"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ======================================================
// CREATE — só para agendamento concluído do próprio cliente, uma vez
// ======================================================

func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, req.AppointmentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if ap.ClientID != userID {
		httperr.Forbidden(c, "forbidden", "Só o cliente do agendamento pode avaliar.")
		return
	}

	if ap.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "appointment_not_completed", "Agendamento ainda não concluído.")
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("appointment_id = ?", ap.ID).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "review_exists", "Agendamento já avaliado.")
		return
	}

	recommend := true
	if req.WouldRecommend != nil {
		recommend = *req.WouldRecommend
	}

	review := models.Review{
		AppointmentID:  ap.ID,
		ClientID:       ap.ClientID,
		BarberID:       ap.BarberID,
		ServiceID:      ap.ServiceID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		ServiceQuality: req.ServiceQuality,
		BarberSkill:    req.BarberSkill,
		Cleanliness:    req.Cleanliness,
		ValueForMoney:  req.ValueForMoney,
		WouldRecommend: recommend,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Erro ao criar avaliação.")
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ======================================================
// LIST
// ======================================================

func (h *ReviewHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Review{})

	if v := c.Query("barber_id"); v != "" {
		q = q.Where("barber_id = ?", v)
	}
	if v := c.Query("service_id"); v != "" {
		q = q.Where("service_id = ?", v)
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Limit(100).Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) MyReviews(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var reviews []models.Review
	if err := h.db.
		Where("client_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// PendingReviews lista agendamentos concluídos do cliente ainda sem
// avaliação.
func (h *ReviewHandler) PendingReviews(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var aps []models.Appointment
	err := h.db.
		Preload("Barber.User").
		Preload("Service").
		Where(
			"client_id = ? AND status = ? AND id NOT IN (?)",
			userID,
			string(domain.StatusCompleted),
			h.db.Model(&models.Review{}).Select("appointment_id").Where("client_id = ?", userID),
		).
		Order("start_time DESC").
		Find(&aps).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_pending", "Erro ao listar pendências.")
		return
	}

	type pending struct {
		AppointmentID uint      `json:"appointment_id"`
		BarberName    string    `json:"barber_name"`
		ServiceName   string    `json:"service_name"`
		ScheduledAt   time.Time `json:"scheduled_at"`
	}

	out := make([]pending, 0, len(aps))
	for _, ap := range aps {
		out = append(out, pending{
			AppointmentID: ap.ID,
			BarberName:    ap.Barber.User.Name,
			ServiceName:   ap.Service.Name,
			ScheduledAt:   ap.StartTime,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STATS
// ======================================================

type reviewStats struct {
	TotalReviews   int64   `json:"total_reviews"`
	AverageRating  float64 `json:"average_rating"`
	ServiceQuality float64 `json:"service_quality"`
	BarberSkill    float64 `json:"barber_skill"`
	Cleanliness    float64 `json:"cleanliness"`
	ValueForMoney  float64 `json:"value_for_money"`
	RecommendRate  float64 `json:"recommend_rate"`

	RatingDistribution map[string]int64 `json:"rating_distribution"`
}

func (h *ReviewHandler) BarberStats(c *gin.Context) {
	h.stats(c, "barber_id")
}

func (h *ReviewHandler) ServiceStats(c *gin.Context) {
	h.stats(c, "service_id")
}

func (h *ReviewHandler) stats(c *gin.Context, column string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var agg struct {
		Total          int64
		AvgRating      float64
		AvgQuality     float64
		AvgSkill       float64
		AvgCleanliness float64
		AvgValue       float64
		Recommends     int64
	}

	err = h.db.Model(&models.Review{}).
		Select(`
            COUNT(*) AS total,
            COALESCE(AVG(rating), 0) AS avg_rating,
            COALESCE(AVG(service_quality), 0) AS avg_quality,
            COALESCE(AVG(barber_skill), 0) AS avg_skill,
            COALESCE(AVG(cleanliness), 0) AS avg_cleanliness,
            COALESCE(AVG(value_for_money), 0) AS avg_value,
            COUNT(*) FILTER (WHERE would_recommend) AS recommends
        `).
		Where(column+" = ?", uint(id)).
		Scan(&agg).Error
	if err != nil {
		httperr.Internal(c, "failed_to_compute_stats", "Erro ao calcular estatísticas.")
		return
	}

	dist := map[string]int64{}
	var rows []struct {
		Rating int
		Count  int64
	}
	h.db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where(column+" = ?", uint(id)).
		Group("rating").
		Scan(&rows)
	for _, r := range rows {
		dist[strconv.Itoa(r.Rating)] = r.Count
	}

	stats := reviewStats{
		TotalReviews:       agg.Total,
		AverageRating:      agg.AvgRating,
		ServiceQuality:     agg.AvgQuality,
		BarberSkill:        agg.AvgSkill,
		Cleanliness:        agg.AvgCleanliness,
		ValueForMoney:      agg.AvgValue,
		RatingDistribution: dist,
	}
	if agg.Total > 0 {
		stats.RecommendRate = float64(agg.Recommends) / float64(agg.Total) * 100
	}

	c.JSON(http.StatusOK, stats)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *ReviewHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	review, ok := h.findReview(c)
	if !ok {
		return
	}

	if review.ClientID != userID {
		httperr.Forbidden(c, "forbidden", "Só o autor pode editar a avaliação.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	now := time.Now().UTC()
	review.UpdatedAt = &now

	if err := h.db.Save(review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Erro ao atualizar avaliação.")
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	review, ok := h.findReview(c)
	if !ok {
		return
	}

	if role != models.RoleAdmin && review.ClientID != userID {
		httperr.Forbidden(c, "forbidden", "Sem permissão para excluir.")
		return
	}

	if err := h.db.Delete(review).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "Erro ao excluir avaliação.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avaliação excluída."})
}

func (h *ReviewHandler) findReview(c *gin.Context) (*models.Review, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_review_id", "Identificador inválido.")
		return nil, false
	}

	var review models.Review
	if err := h.db.First(&review, uint(id)).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Avaliação não encontrada.")
		return nil, false
	}

	return &review, true
}
