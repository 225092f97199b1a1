package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/infrastructure/database"
)

type SupabaseReviewsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseReviewsRepository(client *database.SupabaseClient) repository.ReviewsRepository {
	return &SupabaseReviewsRepository{
		client: client,
	}
}

func (r *SupabaseReviewsRepository) Create(ctx context.Context, review *model.Review) error {
	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("レビューデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("reviews").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("レビューデータの作成失敗: %w", err)
	}

	return nil
}

func (r *SupabaseReviewsRepository) GetByToiletID(ctx context.Context, toiletID string) ([]model.Review, error) {
	var reviews []model.Review
	data, count, err := r.client.GetClient().From("reviews").Select("*", "exact", false).Eq("toilet_id", toiletID).Execute()
	if err != nil {
		return nil, fmt.Errorf("レビューデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &reviews); err != nil {
		return nil, fmt.Errorf("レビューデータのJSONアンマーシャル失敗: %w", err)
	}

	// created_atはISO 8601文字列なので辞書順の降順が新しい順になる
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt > reviews[j].CreatedAt
	})

	return reviews, nil
}

func (r *SupabaseReviewsRepository) CountByProfileID(ctx context.Context, profileID string) (int, error) {
	_, count, err := r.client.GetClient().From("reviews").Select("id", "exact", false).Eq("profile_id", profileID).Execute()
	if err != nil {
		return 0, fmt.Errorf("レビュー件数の取得失敗: %w", err)
	}

	return int(count), nil
}
