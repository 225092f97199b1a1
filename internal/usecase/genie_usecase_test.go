package usecase

import (
	"context"
	"fmt"
	"testing"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/repository"

	"github.com/stretchr/testify/assert"
)

// stubToiletsRepo 固定のトイレ一覧を返すテスト用リポジトリ
type stubToiletsRepo struct {
	toilets []model.Toilet
}

func (s *stubToiletsRepo) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	for _, t := range s.toilets {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("トイレID %s が見つかりません", id)
}

func (s *stubToiletsRepo) GetAll(ctx context.Context) ([]model.Toilet, error) {
	return s.toilets, nil
}

func (s *stubToiletsRepo) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error) {
	return s.toilets, nil
}

func (s *stubToiletsRepo) GetNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Toilet, error) {
	return s.toilets, nil
}

func (s *stubToiletsRepo) Create(ctx context.Context, toilet *model.Toilet) error { return nil }

func (s *stubToiletsRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }

func (s *stubToiletsRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	return nil
}

func setupGenieUseCase() GenieUseCase {
	toiletsRepo := &stubToiletsRepo{toilets: []model.Toilet{
		{ID: "t1", Name: "Garden Loo", CleanlinessRating: 4.8, Price: 0, Tags: []string{model.TagBidet}},
		{ID: "t2", Name: "Side Alley", CleanlinessRating: 2.1, Price: 1},
	}}
	return NewGenieUseCase(toiletsRepo, repository.NewMemoryHistoryRepository())
}

func TestGenieUseCaseQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("セッションID未指定なら新規発行される", func(t *testing.T) {
		uc := setupGenieUseCase()

		resp, err := uc.Query(ctx, &model.GenieQueryRequest{Text: "free toilets"})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.SessionID)
		assert.NotEmpty(t, resp.Results)
	})

	t.Run("同じセッションなら説明キャッシュが引き継がれる", func(t *testing.T) {
		uc := setupGenieUseCase()

		first, err := uc.Query(ctx, &model.GenieQueryRequest{Text: "recommend me a toilet"})
		assert.NoError(t, err)
		assert.Contains(t, first.Message, "Garden Loo")

		second, err := uc.Query(ctx, &model.GenieQueryRequest{
			SessionID: first.SessionID,
			Text:      "why did you pick that",
		})
		assert.NoError(t, err)
		assert.Contains(t, second.Message, "Garden Loo")
	})

	t.Run("別セッションでは説明キャッシュを共有しない", func(t *testing.T) {
		uc := setupGenieUseCase()

		first, err := uc.Query(ctx, &model.GenieQueryRequest{Text: "recommend"})
		assert.NoError(t, err)

		other, err := uc.Query(ctx, &model.GenieQueryRequest{Text: "why"})
		assert.NoError(t, err)
		assert.NotEqual(t, first.SessionID, other.SessionID)
		assert.Contains(t, other.Message, "haven't recommended")
	})
}

func TestGenieUseCaseHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("問い合わせのたびに履歴が新しい順で残る", func(t *testing.T) {
		uc := setupGenieUseCase()

		first, err := uc.Query(ctx, &model.GenieQueryRequest{Text: "cleanest"})
		assert.NoError(t, err)

		_, err = uc.Query(ctx, &model.GenieQueryRequest{SessionID: first.SessionID, Text: "free"})
		assert.NoError(t, err)

		history, err := uc.GetHistory(ctx, first.SessionID)
		assert.NoError(t, err)
		assert.Len(t, history.Entries, 2)
		assert.Equal(t, "free", history.Entries[0].Query)
		assert.Equal(t, "cleanest", history.Entries[1].Query)
	})

	t.Run("履歴は直近10件に制限される", func(t *testing.T) {
		uc := setupGenieUseCase()

		first, err := uc.Query(ctx, &model.GenieQueryRequest{Text: "query 0"})
		assert.NoError(t, err)

		for i := 1; i < 13; i++ {
			_, err := uc.Query(ctx, &model.GenieQueryRequest{
				SessionID: first.SessionID,
				Text:      fmt.Sprintf("query %d", i),
			})
			assert.NoError(t, err)
		}

		history, err := uc.GetHistory(ctx, first.SessionID)
		assert.NoError(t, err)
		assert.Len(t, history.Entries, 10)
		assert.Equal(t, "query 12", history.Entries[0].Query)
	})
}
