package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"

	storage_go "github.com/supabase-community/storage-go"

	"ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/infrastructure/database"
)

// imageBucket トイレ・レビュー画像を保存する公開バケット
const imageBucket = "toilet-images"

// SupabaseImageStorage Supabase Storageを使用した画像ストレージ
type SupabaseImageStorage struct {
	client *database.SupabaseClient
}

// NewSupabaseImageStorage 新しいSupabaseImageStorageインスタンスを作成
func NewSupabaseImageStorage(client *database.SupabaseClient) repository.ImageStorageRepository {
	return &SupabaseImageStorage{
		client: client,
	}
}

// Upload 画像を公開バケットにアップロードして公開URLを返す
func (s *SupabaseImageStorage) Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	options := storage_go.FileOptions{}
	if contentType != "" {
		options.ContentType = &contentType
	}

	_, err := s.client.GetClient().Storage.UploadFile(imageBucket, fileName, bytes.NewReader(data), options)
	if err != nil {
		return "", fmt.Errorf("画像のアップロード失敗: %w", err)
	}

	// 公開バケットのURL形式は固定なのでクライアント側で組み立てる
	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", os.Getenv("SUPABASE_URL"), imageBucket, fileName)
	return publicURL, nil
}
