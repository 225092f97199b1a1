package repository

import "context"

// ImageStorageRepository トイレ・レビュー画像のアップロードを担うインターフェース
type ImageStorageRepository interface {
	// Upload 画像をアップロードして公開URLを返す
	Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
}
