package repository

import (
	"context"

	"ToiletGenie-App/internal/domain/model"
)

// ToiletsRepository トイレスポットの永続化を担うリポジトリのインターフェース
type ToiletsRepository interface {
	// GetByID IDでトイレを1件取得
	GetByID(ctx context.Context, id string) (*model.Toilet, error)

	// GetAll 全トイレを取得（ジーニーの検索プールに使用）
	GetAll(ctx context.Context) ([]model.Toilet, error)

	// GetByBoundingBox 境界ボックス内のトイレ一覧を取得（地図表示用）
	GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error)

	// GetNearby 指定地点から半径radiusMeters以内のトイレを近い順に取得
	GetNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Toilet, error)

	// Create トイレを新規作成
	Create(ctx context.Context, toilet *model.Toilet) error

	// UpdateStatus 営業ステータスを更新
	UpdateStatus(ctx context.Context, id, status string) error

	// UpdateRating レビュー追加後の評価とレビュー件数を更新
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
}
