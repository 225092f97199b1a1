package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ToiletGenie-App/internal/application"
	"ToiletGenie-App/internal/domain/model"
)

// ProfilesHandler ユーザープロフィールに関するHTTPハンドラー
type ProfilesHandler struct {
	profilesService application.ProfilesService
}

// NewProfilesHandler ProfilesHandlerの新しいインスタンスを作成
func NewProfilesHandler(profilesService application.ProfilesService) *ProfilesHandler {
	return &ProfilesHandler{
		profilesService: profilesService,
	}
}

// GetProfile GET /profiles/:id - プロフィールを取得
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	profileID := c.Param("id")

	profile, err := h.profilesService.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Failed to get profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetUserStats GET /profiles/:id/stats - ユーザーの利用状況を取得
func (h *ProfilesHandler) GetUserStats(c *gin.Context) {
	profileID := c.Param("id")

	stats, err := h.profilesService.GetUserStats(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get user stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SaveProfile PUT /profiles/:id - プロフィールを作成または更新
func (h *ProfilesHandler) SaveProfile(c *gin.Context) {
	profileID := c.Param("id")

	var req model.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	profile, err := h.profilesService.SaveProfile(c.Request.Context(), profileID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ToggleFavorite POST /profiles/:id/favorites/:toiletId - お気に入りを切り替え
func (h *ProfilesHandler) ToggleFavorite(c *gin.Context) {
	profileID := c.Param("id")
	toiletID := c.Param("toiletId")

	favorited, err := h.profilesService.ToggleFavorite(c.Request.Context(), profileID, toiletID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to toggle favorite: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"favorited": favorited,
	})
}
