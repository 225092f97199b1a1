package genie

import (
	"testing"

	"ToiletGenie-App/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// 緯度1度あたり約111.195km（地球半径6371kmベース）
const latDegreePerKm = 1.0 / 111.195

func makeToilet(id, name string, rating, price float64, tags []string, distKm float64) model.Toilet {
	return model.Toilet{
		ID:                id,
		Name:              name,
		Lat:               distKm * latDegreePerKm,
		Lng:               0,
		CleanlinessRating: rating,
		Price:             price,
		Tags:              tags,
		Status:            model.StatusOpen,
	}
}

var testOrigin = &model.LatLng{Lat: 0, Lng: 0}

func TestEngineScenarios(t *testing.T) {
	pair := []model.Toilet{
		makeToilet("t1", "Sparkle Station", 5, 0, nil, 0.3),
		makeToilet("t2", "Bidet Palace", 3, 2, []string{model.TagBidet}, 0.1),
	}

	t.Run("cleanestは最高評価のトイレを先頭にする", func(t *testing.T) {
		engine := NewEngine(pair, testOrigin, nil)
		resp := engine.HandleQuery("cleanest")

		assert.Equal(t, model.IntentSelect, resp.Intent)
		assert.NotEmpty(t, resp.Results)
		assert.Equal(t, "Sparkle Station", resp.Results[0].Name)
		assert.Contains(t, resp.Message, "Sparkle Station")
	})

	t.Run("free and bidetは積集合なので空になる", func(t *testing.T) {
		engine := NewEngine(pair, testOrigin, nil)
		resp := engine.HandleQuery("free and bidet")

		assert.Empty(t, resp.Results)
		assert.Equal(t, model.IntentNone, resp.Intent)
		assert.Contains(t, resp.Message, "no toilet matches")
	})

	t.Run("free or bidetは和集合を評価順で返す", func(t *testing.T) {
		engine := NewEngine(pair, testOrigin, nil)
		resp := engine.HandleQuery("free or bidet")

		assert.Len(t, resp.Results, 2)
		assert.Equal(t, "Sparkle Station", resp.Results[0].Name)
		assert.Equal(t, "Bidet Palace", resp.Results[1].Name)
		assert.Equal(t, model.IntentFilter, resp.Intent)
	})

	t.Run("位置情報なしのwithin 500mは位置情報を求める", func(t *testing.T) {
		engine := NewEngine(pair, nil, nil)
		resp := engine.HandleQuery("within 500m")

		assert.Empty(t, resp.Results)
		assert.Contains(t, resp.Message, "location")
		assert.Equal(t, model.IntentNone, resp.Intent)
	})

	t.Run("top 1 cleanestは最高評価の1件だけを返す", func(t *testing.T) {
		trio := []model.Toilet{
			makeToilet("t1", "Bronze Loo", 3, 0, nil, 0.5),
			makeToilet("t2", "Gold Loo", 5, 0, nil, 1.0),
			makeToilet("t3", "Silver Loo", 4, 0, nil, 0.2),
		}
		engine := NewEngine(trio, testOrigin, nil)
		resp := engine.HandleQuery("top 1 cleanest")

		assert.Len(t, resp.Results, 1)
		assert.Equal(t, "Gold Loo", resp.Results[0].Name)
	})
}

func TestEngineCompoundQueries(t *testing.T) {
	toilets := []model.Toilet{
		makeToilet("t1", "Free Near", 3.5, 0, nil, 0.4),
		makeToilet("t2", "Paid Clean", 4.8, 1, []string{model.TagPremium}, 3.0),
		makeToilet("t3", "Free Clean Near", 4.2, 0, []string{model.TagBidet}, 0.6),
	}

	t.Run("and複合クエリは全ての句を満たすものだけを返す", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("clean and free")

		assert.Len(t, resp.Results, 1)
		assert.Equal(t, "Free Clean Near", resp.Results[0].Name)
	})

	t.Run("or複合クエリはIDで重複除去した和集合を返す", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("free or near")

		// t1とt3は両方の句に該当するが1回ずつしか現れない
		assert.Len(t, resp.Results, 2)
		seen := map[string]int{}
		for _, r := range resp.Results {
			seen[r.ID]++
		}
		assert.Equal(t, 1, seen["t1"])
		assert.Equal(t, 1, seen["t3"])
	})

	t.Run("解釈できる句がない複合クエリは通常の解析に落ちる", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("foo or bar")

		// 名前検索にも該当しないため汎用ヘルプになる
		assert.Equal(t, model.IntentNone, resp.Intent)
		assert.Contains(t, resp.Message, "I can help you")
	})
}

func TestEngineStructuredConditions(t *testing.T) {
	toilets := []model.Toilet{
		makeToilet("t1", "Plaza Restroom", 4.5, 0, []string{model.TagBidet, model.TagAccessible}, 0.3),
		makeToilet("t2", "Station Toilet", 3.0, 0.5, []string{model.TagBidet}, 1.5),
		makeToilet("t3", "Mall Washroom", 5.0, 2, []string{model.TagPremium}, 0.8),
	}

	t.Run("複数条件は連言として適用される", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("free 4 star toilets with bidet")

		assert.Len(t, resp.Results, 1)
		assert.Equal(t, "Plaza Restroom", resp.Results[0].Name)
		assert.Equal(t, model.IntentFilter, resp.Intent)
	})

	t.Run("距離条件は指定半径内だけを残す", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("toilets within 1 km")

		assert.Len(t, resp.Results, 2)
		for _, r := range resp.Results {
			assert.Less(t, r.DistanceKm, 1.0)
		}
	})

	t.Run("結果が空の場合は満たせなかった条件を説明する", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("5 star toilets with baby changing")

		assert.Empty(t, resp.Results)
		assert.Contains(t, resp.Message, "baby changing")
	})

	t.Run("結果は常に5件以下に切り詰められる", func(t *testing.T) {
		var many []model.Toilet
		for i := 0; i < 8; i++ {
			many = append(many, makeToilet(
				string(rune('a'+i)), "Loo "+string(rune('A'+i)), 4.5, 0, nil, float64(i)*0.1))
		}
		engine := NewEngine(many, testOrigin, nil)
		resp := engine.HandleQuery("free toilets")

		assert.LessOrEqual(t, len(resp.Results), 5)
	})
}

func TestEngineCascade(t *testing.T) {
	toilets := []model.Toilet{
		makeToilet("t1", "Central Park Loo", 4.6, 0, []string{model.TagClean}, 0.3),
		makeToilet("t2", "Harbour Toilet", 2.5, 1, []string{model.TagDirty}, 0.1),
	}

	t.Run("単体のcleanは評価4以上またはCleanタグの広い意味で扱う", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("clean")

		assert.Len(t, resp.Results, 1)
		assert.Equal(t, "Central Park Loo", resp.Results[0].Name)
	})

	t.Run("nearestは最寄りのトイレをフォーカスさせる", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("nearest")

		assert.Equal(t, model.IntentSelect, resp.Intent)
		assert.Contains(t, resp.Message, "Harbour Toilet")
		assert.Equal(t, "Harbour Toilet", resp.Results[0].Name)
	})

	t.Run("位置情報なしのnearestは位置情報を求める", func(t *testing.T) {
		engine := NewEngine(toilets, nil, nil)
		resp := engine.HandleQuery("nearest")

		assert.Contains(t, resp.Message, "location")
		assert.Empty(t, resp.Results)
	})

	t.Run("どのキーワードにも該当しない文字列は名前・住所検索になる", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("harbour")

		assert.Equal(t, model.IntentSearch, resp.Intent)
		assert.Len(t, resp.Results, 1)
		assert.Equal(t, "Harbour Toilet", resp.Results[0].Name)
	})

	t.Run("該当ルールが空でも後続の名前検索が答えを出せる", func(t *testing.T) {
		// 評価4以上はないが名前に"good"を含むトイレはある
		named := []model.Toilet{
			makeToilet("t1", "Good Times Mall", 3.2, 0, nil, 0.5),
		}
		engine := NewEngine(named, testOrigin, nil)
		resp := engine.HandleQuery("good")

		assert.Equal(t, model.IntentSearch, resp.Intent)
		assert.Len(t, resp.Results, 1)
		assert.Equal(t, "Good Times Mall", resp.Results[0].Name)
	})

	t.Run("該当ルールはあるが結果が空の場合は定型文を返す", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("premium")

		assert.Empty(t, resp.Results)
		assert.Contains(t, resp.Message, "premium")
	})
}

func TestEngineConversational(t *testing.T) {
	toilets := []model.Toilet{
		makeToilet("t1", "Alpha Loo", 4.8, 0, []string{model.TagBidet}, 0.2),
		makeToilet("t2", "Beta Loo", 3.2, 1.5, nil, 2.5),
	}

	t.Run("挨拶には案内文を返す", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("hello")

		assert.Contains(t, resp.Message, "Toilet Genie")
		assert.Empty(t, resp.Results)
	})

	t.Run("空クエリはヘルプになる", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("   ")

		assert.Contains(t, resp.Message, "I can help you")
	})

	t.Run("statsは全件対象の集計を返す", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("show me the stats")

		assert.Contains(t, resp.Message, "2 toilets")
		assert.Contains(t, resp.Message, "1 free, 1 paid")
	})

	t.Run("compareは先頭2件の優劣を判定する", func(t *testing.T) {
		engine := NewEngine(toilets, testOrigin, nil)
		resp := engine.HandleQuery("compare them")

		assert.Len(t, resp.Results, 2)
		// Alpha Looは評価が高くて近いので明確な勝者
		assert.Contains(t, resp.Message, "Alpha Loo** wins")
	})

	t.Run("トイレが1件しかない場合の比較は断る", func(t *testing.T) {
		engine := NewEngine(toilets[:1], testOrigin, nil)
		resp := engine.HandleQuery("compare")

		assert.Contains(t, resp.Message, "at least two")
	})
}
