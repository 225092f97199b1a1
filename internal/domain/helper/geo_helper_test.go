package helper

import (
	"math"
	"testing"

	"ToiletGenie-App/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	kyotoStation := model.LatLng{Lat: 34.985849, Lng: 135.758766}
	kawaramachi := model.LatLng{Lat: 35.004573, Lng: 135.768799}

	t.Run("同じ2点間の距離は常に同じ値になる", func(t *testing.T) {
		first := HaversineDistance(kyotoStation, kawaramachi)
		second := HaversineDistance(kyotoStation, kawaramachi)
		assert.Equal(t, first, second)
	})

	t.Run("距離は対称（A→BとB→Aが等しい）", func(t *testing.T) {
		assert.InDelta(t,
			HaversineDistance(kyotoStation, kawaramachi),
			HaversineDistance(kawaramachi, kyotoStation),
			1e-12)
	})

	t.Run("同一地点の距離はゼロ", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistance(kyotoStation, kyotoStation))
	})

	t.Run("京都駅から河原町までは約2.2km", func(t *testing.T) {
		distance := HaversineDistance(kyotoStation, kawaramachi)
		assert.InDelta(t, 2.2, distance, 0.2)
	})
}

func TestWithDistances(t *testing.T) {
	toilets := []model.Toilet{
		{ID: "a", Name: "North Loo", Lat: 35.01, Lng: 135.76},
		{ID: "b", Name: "South Loo", Lat: 34.98, Lng: 135.76},
	}

	t.Run("基準地点があれば各トイレに距離を付与する", func(t *testing.T) {
		origin := &model.LatLng{Lat: 35.0, Lng: 135.76}
		ranked := WithDistances(toilets, origin)

		assert.Len(t, ranked, 2)
		for _, r := range ranked {
			assert.True(t, r.HasDistance())
			assert.Greater(t, r.DistanceKm, 0.0)
		}
	})

	t.Run("基準地点がなければ距離は不明（+Inf）になる", func(t *testing.T) {
		ranked := WithDistances(toilets, nil)

		for _, r := range ranked {
			assert.False(t, r.HasDistance())
			assert.True(t, math.IsInf(r.DistanceKm, 1))
		}
	})

	t.Run("元のスライスは変更されない", func(t *testing.T) {
		origin := &model.LatLng{Lat: 35.0, Lng: 135.76}
		WithDistances(toilets, origin)
		assert.Equal(t, "North Loo", toilets[0].Name)
	})
}

func TestSortHelpers(t *testing.T) {
	build := func() []model.RankedToilet {
		return []model.RankedToilet{
			{Toilet: model.Toilet{ID: "a", Name: "Charlie", CleanlinessRating: 4.0}, DistanceKm: 0.5},
			{Toilet: model.Toilet{ID: "b", Name: "alpha", CleanlinessRating: 4.8}, DistanceKm: 2.0},
			{Toilet: model.Toilet{ID: "c", Name: "Bravo", CleanlinessRating: 4.0}, DistanceKm: 0.2},
			{Toilet: model.Toilet{ID: "d", Name: "Delta", CleanlinessRating: 3.0}, DistanceKm: math.Inf(1)},
		}
	}

	t.Run("評価順は降順で同率は近い方が上", func(t *testing.T) {
		toilets := build()
		SortByRating(toilets)

		for i := 1; i < len(toilets); i++ {
			assert.GreaterOrEqual(t, toilets[i-1].CleanlinessRating, toilets[i].CleanlinessRating)
		}
		// 評価4.0同士は距離0.2のcが先
		assert.Equal(t, "c", toilets[1].ID)
		assert.Equal(t, "a", toilets[2].ID)
	})

	t.Run("距離順は昇順で距離不明は末尾", func(t *testing.T) {
		toilets := build()
		SortByDistance(toilets)

		assert.Equal(t, "c", toilets[0].ID)
		assert.Equal(t, "d", toilets[len(toilets)-1].ID)
	})

	t.Run("名前順は大文字小文字を無視した辞書順", func(t *testing.T) {
		toilets := build()
		SortByName(toilets)

		assert.Equal(t, "alpha", toilets[0].Name)
		assert.Equal(t, "Bravo", toilets[1].Name)
	})
}

func TestDeduplicateByID(t *testing.T) {
	toilets := []model.RankedToilet{
		{Toilet: model.Toilet{ID: "a", Name: "First"}},
		{Toilet: model.Toilet{ID: "b", Name: "Second"}},
		{Toilet: model.Toilet{ID: "a", Name: "First again"}},
	}

	deduped := DeduplicateByID(toilets)

	assert.Len(t, deduped, 2)
	// 最初の出現が残る
	assert.Equal(t, "First", deduped[0].Name)
	assert.Equal(t, "Second", deduped[1].Name)
}

func TestTruncate(t *testing.T) {
	toilets := []model.RankedToilet{
		{Toilet: model.Toilet{ID: "a"}},
		{Toilet: model.Toilet{ID: "b"}},
		{Toilet: model.Toilet{ID: "c"}},
	}

	assert.Len(t, Truncate(toilets, 2), 2)
	assert.Len(t, Truncate(toilets, 5), 3)
	assert.Empty(t, Truncate(toilets, 0))
}

func TestFormatHelpers(t *testing.T) {
	t.Run("1km未満はメートル表記", func(t *testing.T) {
		assert.Equal(t, "300m away", FormatDistance(0.3))
		assert.Equal(t, "1.5km away", FormatDistance(1.5))
		assert.Empty(t, FormatDistance(math.Inf(1)))
	})

	t.Run("件数に応じた複数形", func(t *testing.T) {
		assert.Equal(t, "1 toilet", Pluralize(1, "toilet"))
		assert.Equal(t, "3 toilets", Pluralize(3, "toilet"))
	})

	t.Run("自然な英語の列挙", func(t *testing.T) {
		assert.Equal(t, "free", JoinWithAnd([]string{"free"}))
		assert.Equal(t, "free and clean", JoinWithAnd([]string{"free", "clean"}))
		assert.Equal(t, "free, clean, and nearby", JoinWithAnd([]string{"free", "clean", "nearby"}))
	})

	t.Run("料金表記", func(t *testing.T) {
		assert.Equal(t, "free", FormatPrice(0))
		assert.Equal(t, "RM1.50", FormatPrice(1.5))
	})
}
