package application

import (
	"context"
	"fmt"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
)

// ProfilesService ユーザープロフィールに関するビジネスロジックを提供するサービス
type ProfilesService interface {
	// GetProfile プロフィールを取得（存在しない場合はエラー）
	GetProfile(ctx context.Context, id string) (*model.Profile, error)

	// GetUserStats ユーザーの利用状況（レビュー数・お気に入り数）を取得
	GetUserStats(ctx context.Context, id string) (*model.UserStats, error)

	// SaveProfile プロフィールを作成または更新
	SaveProfile(ctx context.Context, id string, req *model.SaveProfileRequest) (*model.Profile, error)

	// ToggleFavorite お気に入りの追加・削除を切り替え、切り替え後の状態を返す
	ToggleFavorite(ctx context.Context, profileID, toiletID string) (bool, error)
}

// profilesServiceImpl ProfilesServiceの実装
type profilesServiceImpl struct {
	profilesRepo repository.ProfilesRepository
	reviewsRepo  repository.ReviewsRepository
}

// NewProfilesService ProfilesServiceの新しいインスタンスを作成
func NewProfilesService(
	profilesRepo repository.ProfilesRepository,
	reviewsRepo repository.ReviewsRepository,
) ProfilesService {
	return &profilesServiceImpl{
		profilesRepo: profilesRepo,
		reviewsRepo:  reviewsRepo,
	}
}

// GetProfile プロフィールを取得
func (s *profilesServiceImpl) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	profile, err := s.profilesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得失敗: %w", err)
	}
	return profile, nil
}

// GetUserStats ユーザーの利用状況を取得
func (s *profilesServiceImpl) GetUserStats(ctx context.Context, id string) (*model.UserStats, error) {
	profile, err := s.profilesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得失敗: %w", err)
	}

	reviewCount, err := s.reviewsRepo.CountByProfileID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("レビュー件数の取得失敗: %w", err)
	}

	return &model.UserStats{
		ReviewsWritten: reviewCount,
		FavoritesCount: len(profile.Favorites),
	}, nil
}

// SaveProfile プロフィールを作成または更新
func (s *profilesServiceImpl) SaveProfile(ctx context.Context, id string, req *model.SaveProfileRequest) (*model.Profile, error) {
	if req.DisplayName == "" {
		return nil, fmt.Errorf("表示名は必須です")
	}

	// 既存のお気に入りは引き継ぐ
	var favorites []string
	if existing, err := s.profilesRepo.GetByID(ctx, id); err == nil {
		favorites = existing.Favorites
	}

	profile := &model.Profile{
		ID:          id,
		DisplayName: req.DisplayName,
		Favorites:   favorites,
	}

	if err := s.profilesRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("プロフィールの保存失敗: %w", err)
	}

	return profile, nil
}

// ToggleFavorite お気に入りの追加・削除を切り替える
// 戻り値は切り替え後にお気に入り登録されているかどうか
func (s *profilesServiceImpl) ToggleFavorite(ctx context.Context, profileID, toiletID string) (bool, error) {
	profile, err := s.profilesRepo.GetByID(ctx, profileID)
	if err != nil {
		return false, fmt.Errorf("プロフィールの取得失敗: %w", err)
	}

	favorited := false
	var updated []string
	for _, id := range profile.Favorites {
		if id == toiletID {
			continue
		}
		updated = append(updated, id)
	}
	if len(updated) == len(profile.Favorites) {
		// 未登録だったので追加する
		updated = append(updated, toiletID)
		favorited = true
	}

	if err := s.profilesRepo.UpdateFavorites(ctx, profileID, updated); err != nil {
		return false, fmt.Errorf("お気に入りの更新失敗: %w", err)
	}

	return favorited, nil
}
