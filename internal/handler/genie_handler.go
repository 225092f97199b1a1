package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/usecase"
)

// GenieHandler ジーニーへの問い合わせに関するHTTPハンドラー
type GenieHandler struct {
	genieUseCase usecase.GenieUseCase
}

// NewGenieHandler GenieHandlerの新しいインスタンスを作成
func NewGenieHandler(genieUseCase usecase.GenieUseCase) *GenieHandler {
	return &GenieHandler{
		genieUseCase: genieUseCase,
	}
}

// Query POST /genie/query - テキストクエリへの応答を生成
func (h *GenieHandler) Query(c *gin.Context) {
	var req model.GenieQueryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.genieUseCase.Query(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to process query: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetHistory GET /genie/history/:sessionId - セッションの問い合わせ履歴を取得
func (h *GenieHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "Session ID is required",
		})
		return
	}

	response, err := h.genieUseCase.GetHistory(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get history: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
