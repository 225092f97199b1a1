package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ToiletGenie-App/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// fakeToiletsRepo テスト用のインメモリToiletsRepository
type fakeToiletsRepo struct {
	toilets map[string]*model.Toilet
}

func newFakeToiletsRepo() *fakeToiletsRepo {
	return &fakeToiletsRepo{toilets: make(map[string]*model.Toilet)}
}

func (f *fakeToiletsRepo) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	toilet, ok := f.toilets[id]
	if !ok {
		return nil, fmt.Errorf("トイレID %s が見つかりません", id)
	}
	copied := *toilet
	return &copied, nil
}

func (f *fakeToiletsRepo) GetAll(ctx context.Context) ([]model.Toilet, error) {
	var all []model.Toilet
	for _, t := range f.toilets {
		all = append(all, *t)
	}
	return all, nil
}

func (f *fakeToiletsRepo) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error) {
	return f.GetAll(ctx)
}

func (f *fakeToiletsRepo) GetNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Toilet, error) {
	return f.GetAll(ctx)
}

func (f *fakeToiletsRepo) Create(ctx context.Context, toilet *model.Toilet) error {
	copied := *toilet
	f.toilets[toilet.ID] = &copied
	return nil
}

func (f *fakeToiletsRepo) UpdateStatus(ctx context.Context, id, status string) error {
	toilet, ok := f.toilets[id]
	if !ok {
		return fmt.Errorf("トイレID %s が見つかりません", id)
	}
	toilet.Status = status
	return nil
}

func (f *fakeToiletsRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	toilet, ok := f.toilets[id]
	if !ok {
		return fmt.Errorf("トイレID %s が見つかりません", id)
	}
	toilet.CleanlinessRating = rating
	toilet.ReviewCount = reviewCount
	return nil
}

// fakeReviewsRepo テスト用のインメモリReviewsRepository
type fakeReviewsRepo struct {
	reviews []model.Review
}

func (f *fakeReviewsRepo) Create(ctx context.Context, review *model.Review) error {
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewsRepo) GetByToiletID(ctx context.Context, toiletID string) ([]model.Review, error) {
	var result []model.Review
	for _, r := range f.reviews {
		if r.ToiletID == toiletID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReviewsRepo) CountByProfileID(ctx context.Context, profileID string) (int, error) {
	count := 0
	for _, r := range f.reviews {
		if r.ProfileID == profileID {
			count++
		}
	}
	return count, nil
}

// fakeProfilesRepo テスト用のインメモリProfilesRepository
type fakeProfilesRepo struct {
	profiles map[string]*model.Profile
}

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{profiles: make(map[string]*model.Profile)}
}

func (f *fakeProfilesRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("プロフィールID %s が見つかりません", id)
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeProfilesRepo) UpdateFavorites(ctx context.Context, id string, favorites []string) error {
	profile, ok := f.profiles[id]
	if !ok {
		return fmt.Errorf("プロフィールID %s が見つかりません", id)
	}
	profile.Favorites = favorites
	return nil
}

func setupToiletsService() (ToiletsService, *fakeToiletsRepo, *fakeReviewsRepo, *fakeProfilesRepo) {
	toiletsRepo := newFakeToiletsRepo()
	reviewsRepo := &fakeReviewsRepo{}
	profilesRepo := newFakeProfilesRepo()
	return NewToiletsService(toiletsRepo, reviewsRepo, profilesRepo), toiletsRepo, reviewsRepo, profilesRepo
}

func TestCreateToilet(t *testing.T) {
	ctx := context.Background()

	t.Run("正常なリクエストでトイレが作成される", func(t *testing.T) {
		service, toiletsRepo, _, _ := setupToiletsService()

		resp, err := service.CreateToilet(ctx, &model.CreateToiletRequest{
			Name:    "Station Restroom",
			Address: "1-1 Example St",
			Lat:     35.0,
			Lng:     135.76,
			Price:   0.5,
			Tags:    []string{model.TagBidet},
		})

		assert.NoError(t, err)
		assert.Equal(t, "success", resp.Status)
		assert.NotEmpty(t, resp.ToiletID)

		created := toiletsRepo.toilets[resp.ToiletID]
		assert.Equal(t, "Station Restroom", created.Name)
		assert.Equal(t, model.StatusOpen, created.Status)
		assert.Equal(t, 0, created.ReviewCount)
	})

	t.Run("名前なしのリクエストは拒否される", func(t *testing.T) {
		service, _, _, _ := setupToiletsService()

		_, err := service.CreateToilet(ctx, &model.CreateToiletRequest{
			Address: "1-1 Example St",
			Lat:     35.0,
			Lng:     135.76,
		})

		assert.Error(t, err)
	})

	t.Run("範囲外の座標は拒否される", func(t *testing.T) {
		service, _, _, _ := setupToiletsService()

		_, err := service.CreateToilet(ctx, &model.CreateToiletRequest{
			Name:    "Broken",
			Address: "nowhere",
			Lat:     91.0,
			Lng:     135.76,
		})

		assert.Error(t, err)
	})
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()

	seed := func(toiletsRepo *fakeToiletsRepo) string {
		id := "11111111-1111-1111-1111-111111111111"
		toiletsRepo.toilets[id] = &model.Toilet{
			ID: id, Name: "Plaza Restroom", CleanlinessRating: 0, ReviewCount: 0,
		}
		return id
	}

	t.Run("レビュー追加で評価が平均値に再計算される", func(t *testing.T) {
		service, toiletsRepo, _, _ := setupToiletsService()
		toiletID := seed(toiletsRepo)

		resp, err := service.AddReview(ctx, toiletID, &model.AddReviewRequest{
			ProfileID: "user-1", Rating: 4, Comment: "Pretty good",
		})
		assert.NoError(t, err)
		assert.Equal(t, 4.0, resp.NewRating)
		assert.Equal(t, 1, resp.ReviewCount)

		resp, err = service.AddReview(ctx, toiletID, &model.AddReviewRequest{
			ProfileID: "user-2", Rating: 5, Comment: "Spotless",
		})
		assert.NoError(t, err)
		assert.Equal(t, 4.5, resp.NewRating)
		assert.Equal(t, 2, resp.ReviewCount)

		assert.Equal(t, 4.5, toiletsRepo.toilets[toiletID].CleanlinessRating)
	})

	t.Run("平均値は小数第1位に丸められる", func(t *testing.T) {
		service, toiletsRepo, _, _ := setupToiletsService()
		toiletID := seed(toiletsRepo)

		// 3 + 4 + 3 = 10/3 = 3.333... → 3.3
		for i, rating := range []float64{3, 4, 3} {
			resp, err := service.AddReview(ctx, toiletID, &model.AddReviewRequest{
				ProfileID: fmt.Sprintf("user-%d", i), Rating: rating,
			})
			assert.NoError(t, err)
			if i == 2 {
				assert.Equal(t, 3.3, resp.NewRating)
			}
		}
	})

	t.Run("範囲外の評価は拒否される", func(t *testing.T) {
		service, toiletsRepo, _, _ := setupToiletsService()
		toiletID := seed(toiletsRepo)

		_, err := service.AddReview(ctx, toiletID, &model.AddReviewRequest{
			ProfileID: "user-1", Rating: 6,
		})
		assert.Error(t, err)
	})

	t.Run("存在しないトイレへのレビューはエラー", func(t *testing.T) {
		service, _, _, _ := setupToiletsService()

		_, err := service.AddReview(ctx, "missing", &model.AddReviewRequest{
			ProfileID: "user-1", Rating: 4,
		})
		assert.Error(t, err)
	})
}

func TestGetReviews(t *testing.T) {
	ctx := context.Background()

	t.Run("レビューに投稿者名と相対時刻が付与される", func(t *testing.T) {
		service, _, reviewsRepo, profilesRepo := setupToiletsService()

		profilesRepo.profiles["user-1"] = &model.Profile{ID: "user-1", DisplayName: "Hana"}
		reviewsRepo.reviews = []model.Review{
			{ID: "r1", ToiletID: "t1", ProfileID: "user-1", Rating: 5,
				CreatedAt: time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)},
			{ID: "r2", ToiletID: "t1", ProfileID: "unknown", Rating: 3,
				CreatedAt: time.Now().UTC().Add(-30 * time.Minute).Format(time.RFC3339)},
		}

		reviews, err := service.GetReviews(ctx, "t1")
		assert.NoError(t, err)
		assert.Len(t, reviews, 2)

		assert.Equal(t, "Hana", reviews[0].UserName)
		assert.Equal(t, "2h ago", reviews[0].TimeAgo)
		// プロフィールが見つからない投稿者は匿名になる
		assert.Equal(t, "Anonymous", reviews[1].UserName)
		assert.Equal(t, "30m ago", reviews[1].TimeAgo)
	})
}
