package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ToiletGenie-App/internal/application"
	"ToiletGenie-App/internal/domain/model"
)

// ToiletsHandler トイレスポットに関するHTTPハンドラー
type ToiletsHandler struct {
	toiletsService application.ToiletsService
}

// NewToiletsHandler ToiletsHandlerの新しいインスタンスを作成
func NewToiletsHandler(toiletsService application.ToiletsService) *ToiletsHandler {
	return &ToiletsHandler{
		toiletsService: toiletsService,
	}
}

// CreateToilet POST /toilets - トイレの新規登録
func (h *ToiletsHandler) CreateToilet(c *gin.Context) {
	var req model.CreateToiletRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.toiletsService.CreateToilet(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create toilet: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetToilets GET /toilets - トイレ一覧を取得
// bboxクエリパラメータ（min_lng,min_lat,max_lng,max_lat）があれば範囲内だけに絞る
func (h *ToiletsHandler) GetToilets(c *gin.Context) {
	bbox := c.Query("bbox")
	if bbox == "" {
		toilets, err := h.toiletsService.GetAllToilets(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to get toilets: " + err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, model.GetToiletsResponse{Toilets: toilets})
		return
	}

	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "bbox must contain 4 coordinates: min_lng,min_lat,max_lng,max_lat",
		})
		return
	}

	values := make([]float64, 4)
	for i, coord := range coords {
		value, err := strconv.ParseFloat(coord, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid bbox coordinate: " + coord,
			})
			return
		}
		values[i] = value
	}

	toilets, err := h.toiletsService.GetToiletsByBoundingBox(c.Request.Context(), values[0], values[1], values[2], values[3])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get toilets: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.GetToiletsResponse{Toilets: toilets})
}

// GetToiletDetail GET /toilets/:id - トイレの詳細を取得
func (h *ToiletsHandler) GetToiletDetail(c *gin.Context) {
	toiletID := c.Param("id")
	if toiletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "Toilet ID is required",
		})
		return
	}

	toilet, err := h.toiletsService.GetToiletDetail(c.Request.Context(), toiletID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Failed to get toilet: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toilet)
}

// UpdateToiletStatus PATCH /toilets/:id/status - 営業ステータスを更新
func (h *ToiletsHandler) UpdateToiletStatus(c *gin.Context) {
	toiletID := c.Param("id")

	var req model.UpdateToiletStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.toiletsService.UpdateToiletStatus(c.Request.Context(), toiletID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to update status: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AddReview POST /toilets/:id/reviews - レビューを追加
func (h *ToiletsHandler) AddReview(c *gin.Context) {
	toiletID := c.Param("id")

	var req model.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.toiletsService.AddReview(c.Request.Context(), toiletID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to add review: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetReviews GET /toilets/:id/reviews - レビュー一覧を取得
func (h *ToiletsHandler) GetReviews(c *gin.Context) {
	toiletID := c.Param("id")

	reviews, err := h.toiletsService.GetReviews(c.Request.Context(), toiletID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get reviews: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.GetReviewsResponse{Reviews: reviews})
}
