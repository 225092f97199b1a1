package repository

import (
	"context"

	"ToiletGenie-App/internal/domain/model"
)

// ReviewsRepository レビューの永続化を担うリポジトリのインターフェース
type ReviewsRepository interface {
	// Create レビューを新規作成
	Create(ctx context.Context, review *model.Review) error

	// GetByToiletID 指定トイレのレビュー一覧を新しい順に取得
	GetByToiletID(ctx context.Context, toiletID string) ([]model.Review, error)

	// CountByProfileID 指定ユーザーが書いたレビュー件数を取得
	CountByProfileID(ctx context.Context, profileID string) (int, error)
}
