package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
)

// maxImageSizeBytes アップロードできる画像サイズの上限 (5MB)
const maxImageSizeBytes = 5 << 20

// ImagesHandler 画像アップロードに関するHTTPハンドラー
type ImagesHandler struct {
	imageStorage repository.ImageStorageRepository
}

// NewImagesHandler ImagesHandlerの新しいインスタンスを作成
func NewImagesHandler(imageStorage repository.ImageStorageRepository) *ImagesHandler {
	return &ImagesHandler{
		imageStorage: imageStorage,
	}
}

// UploadImage POST /images - multipart/form-dataで画像をアップロード
func (h *ImagesHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "image file is required (multipart field: image)",
		})
		return
	}

	if fileHeader.Size > maxImageSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "image file must be 5MB or smaller",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to open uploaded file: " + err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to read uploaded file: " + err.Error(),
		})
		return
	}

	// ファイル名の衝突を避けるためUUIDベースの名前で保存する
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.imageStorage.Upload(c.Request.Context(), fileName, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to upload image: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.UploadImageResponse{URL: url})
}
