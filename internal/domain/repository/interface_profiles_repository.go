package repository

import (
	"context"

	"ToiletGenie-App/internal/domain/model"
)

// ProfilesRepository ユーザープロフィールの永続化を担うリポジトリのインターフェース
type ProfilesRepository interface {
	// GetByID IDでプロフィールを1件取得
	GetByID(ctx context.Context, id string) (*model.Profile, error)

	// Upsert プロフィールを作成または更新
	Upsert(ctx context.Context, profile *model.Profile) error

	// UpdateFavorites お気に入りトイレの一覧を更新
	UpdateFavorites(ctx context.Context, id string, favorites []string) error
}
