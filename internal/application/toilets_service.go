package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
)

// ToiletsService トイレスポットに関するビジネスロジックを提供するサービス
type ToiletsService interface {
	// CreateToilet トイレを新規登録
	CreateToilet(ctx context.Context, req *model.CreateToiletRequest) (*model.CreateToiletResponse, error)

	// GetAllToilets 全トイレの一覧を取得
	GetAllToilets(ctx context.Context) ([]model.Toilet, error)

	// GetToiletsByBoundingBox 境界ボックス内のトイレ一覧を取得（地図表示用）
	GetToiletsByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error)

	// GetToiletDetail トイレの詳細を取得
	GetToiletDetail(ctx context.Context, id string) (*model.Toilet, error)

	// UpdateToiletStatus 営業ステータスを更新
	UpdateToiletStatus(ctx context.Context, id, status string) error

	// AddReview レビューを追加し、トイレの評価を再計算する
	AddReview(ctx context.Context, toiletID string, req *model.AddReviewRequest) (*model.AddReviewResponse, error)

	// GetReviews トイレのレビュー一覧を新しい順に取得
	GetReviews(ctx context.Context, toiletID string) ([]model.Review, error)
}

// toiletsServiceImpl ToiletsServiceの実装
type toiletsServiceImpl struct {
	toiletsRepo  repository.ToiletsRepository
	reviewsRepo  repository.ReviewsRepository
	profilesRepo repository.ProfilesRepository
}

// NewToiletsService ToiletsServiceの新しいインスタンスを作成
func NewToiletsService(
	toiletsRepo repository.ToiletsRepository,
	reviewsRepo repository.ReviewsRepository,
	profilesRepo repository.ProfilesRepository,
) ToiletsService {
	return &toiletsServiceImpl{
		toiletsRepo:  toiletsRepo,
		reviewsRepo:  reviewsRepo,
		profilesRepo: profilesRepo,
	}
}

// CreateToilet トイレを新規登録
func (s *toiletsServiceImpl) CreateToilet(ctx context.Context, req *model.CreateToiletRequest) (*model.CreateToiletResponse, error) {
	if err := s.validateCreateToiletRequest(req); err != nil {
		return nil, fmt.Errorf("リクエストの検証失敗: %w", err)
	}

	toiletID := uuid.New().String()

	toilet := &model.Toilet{
		ID:                toiletID,
		Name:              req.Name,
		Address:           req.Address,
		Lat:               req.Lat,
		Lng:               req.Lng,
		CleanlinessRating: req.CleanlinessRating,
		ReviewCount:       0,
		Price:             req.Price,
		Tags:              req.Tags,
		Images:            req.Images,
		Status:            model.StatusOpen,
	}

	if err := s.toiletsRepo.Create(ctx, toilet); err != nil {
		return nil, fmt.Errorf("トイレの保存失敗: %w", err)
	}

	return &model.CreateToiletResponse{
		Status:   "success",
		ToiletID: toiletID,
	}, nil
}

// GetAllToilets 全トイレの一覧を取得
func (s *toiletsServiceImpl) GetAllToilets(ctx context.Context) ([]model.Toilet, error) {
	toilets, err := s.toiletsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("トイレ一覧の取得失敗: %w", err)
	}
	return toilets, nil
}

// GetToiletsByBoundingBox 境界ボックス内のトイレ一覧を取得
func (s *toiletsServiceImpl) GetToiletsByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error) {
	toilets, err := s.toiletsRepo.GetByBoundingBox(ctx, minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, fmt.Errorf("境界ボックス内のトイレ取得失敗: %w", err)
	}
	return toilets, nil
}

// GetToiletDetail トイレの詳細を取得
func (s *toiletsServiceImpl) GetToiletDetail(ctx context.Context, id string) (*model.Toilet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("無効なトイレID形式: %s", id)
	}

	toilet, err := s.toiletsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("トイレ詳細の取得失敗: %w", err)
	}
	return toilet, nil
}

// UpdateToiletStatus 営業ステータスを更新
func (s *toiletsServiceImpl) UpdateToiletStatus(ctx context.Context, id, status string) error {
	if status != model.StatusOpen && status != model.StatusClosed && status != model.StatusMaintenance {
		return fmt.Errorf("無効なステータス: %s", status)
	}

	if err := s.toiletsRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("ステータスの更新失敗: %w", err)
	}
	return nil
}

// AddReview レビューを追加し、トイレの評価を全レビューの平均値で再計算する
// 平均値は小数第1位に丸める
func (s *toiletsServiceImpl) AddReview(ctx context.Context, toiletID string, req *model.AddReviewRequest) (*model.AddReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("評価は1から5の範囲で指定してください")
	}

	toilet, err := s.toiletsRepo.GetByID(ctx, toiletID)
	if err != nil {
		return nil, fmt.Errorf("レビュー対象のトイレ取得失敗: %w", err)
	}

	review := &model.Review{
		ID:        uuid.New().String(),
		ToiletID:  toilet.ID,
		ProfileID: req.ProfileID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    req.Images,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.reviewsRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("レビューの保存失敗: %w", err)
	}

	// 既存レビューと新規レビューの平均で評価を再計算する
	reviews, err := s.reviewsRepo.GetByToiletID(ctx, toiletID)
	if err != nil {
		return nil, fmt.Errorf("評価再計算用のレビュー取得失敗: %w", err)
	}

	newRating, reviewCount := recalculateRating(reviews)
	if err := s.toiletsRepo.UpdateRating(ctx, toiletID, newRating, reviewCount); err != nil {
		return nil, fmt.Errorf("トイレ評価の更新失敗: %w", err)
	}

	return &model.AddReviewResponse{
		Status:      "success",
		ReviewID:    review.ID,
		NewRating:   newRating,
		ReviewCount: reviewCount,
	}, nil
}

// GetReviews トイレのレビュー一覧を取得し、投稿者名と相対時刻を付与する
func (s *toiletsServiceImpl) GetReviews(ctx context.Context, toiletID string) ([]model.Review, error) {
	reviews, err := s.reviewsRepo.GetByToiletID(ctx, toiletID)
	if err != nil {
		return nil, fmt.Errorf("レビュー一覧の取得失敗: %w", err)
	}

	for i := range reviews {
		if profile, err := s.profilesRepo.GetByID(ctx, reviews[i].ProfileID); err == nil {
			reviews[i].UserName = profile.DisplayName
		} else {
			reviews[i].UserName = "Anonymous"
		}
		reviews[i].TimeAgo = formatTimeAgo(reviews[i].CreatedAt)
	}

	return reviews, nil
}

// validateCreateToiletRequest リクエストのバリデーション
func (s *toiletsServiceImpl) validateCreateToiletRequest(req *model.CreateToiletRequest) error {
	if req.Name == "" {
		return fmt.Errorf("名前は必須です")
	}
	if req.Address == "" {
		return fmt.Errorf("住所は必須です")
	}
	if req.Lat < -90 || req.Lat > 90 {
		return fmt.Errorf("緯度は-90から90の範囲内である必要があります")
	}
	if req.Lng < -180 || req.Lng > 180 {
		return fmt.Errorf("経度は-180から180の範囲内である必要があります")
	}
	if req.Price < 0 {
		return fmt.Errorf("料金は0以上である必要があります")
	}
	if req.CleanlinessRating < 0 || req.CleanlinessRating > 5 {
		return fmt.Errorf("評価は0から5の範囲内である必要があります")
	}
	return nil
}

// recalculateRating 全レビューの平均評価を小数第1位で丸めて返す
func recalculateRating(reviews []model.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	var total float64
	for _, review := range reviews {
		total += review.Rating
	}
	average := total / float64(len(reviews))

	return math.Round(average*10) / 10, len(reviews)
}

// formatTimeAgo RFC3339の時刻文字列を相対表記に変換する
func formatTimeAgo(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return ""
	}

	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
