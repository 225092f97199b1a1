package helper

import (
	"math"
	"sort"
	"strings"

	"ToiletGenie-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// HaversineDistance は2地点間の距離を計算する (km)
func HaversineDistance(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// WithDistances はトイレ一覧に基準地点からの距離を付与した浅いコピーを作成する
// 基準地点が不明な場合、全件の距離は+Infになる。元のスライスは変更しない
func WithDistances(toilets []model.Toilet, origin *model.LatLng) []model.RankedToilet {
	ranked := make([]model.RankedToilet, 0, len(toilets))
	for _, t := range toilets {
		distance := math.Inf(1)
		if origin != nil {
			distance = HaversineDistance(*origin, t.ToLatLng())
		}
		ranked = append(ranked, model.RankedToilet{Toilet: t, DistanceKm: distance})
	}
	return ranked
}

// SortByRating は評価の高い順にソートする
// 評価が同じ場合、両方の距離が既知なら近い順に並べる
func SortByRating(toilets []model.RankedToilet) {
	sort.SliceStable(toilets, func(i, j int) bool {
		a, b := toilets[i], toilets[j]
		if a.CleanlinessRating == b.CleanlinessRating && a.HasDistance() && b.HasDistance() {
			return a.DistanceKm < b.DistanceKm
		}
		return a.CleanlinessRating > b.CleanlinessRating
	})
}

// SortByDistance は近い順にソートする。距離が不明なトイレは末尾になる
func SortByDistance(toilets []model.RankedToilet) {
	sort.SliceStable(toilets, func(i, j int) bool {
		return toilets[i].DistanceKm < toilets[j].DistanceKm
	})
}

// SortByName は名前の辞書順（大文字小文字を区別しない）にソートする
func SortByName(toilets []model.RankedToilet) {
	sort.SliceStable(toilets, func(i, j int) bool {
		return strings.ToLower(toilets[i].Name) < strings.ToLower(toilets[j].Name)
	})
}

// DeduplicateByID はIDの重複を除去する。最初に現れた要素を残し、順序は保持する
func DeduplicateByID(toilets []model.RankedToilet) []model.RankedToilet {
	seen := make(map[string]struct{})
	var result []model.RankedToilet
	for _, t := range toilets {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		result = append(result, t)
	}
	return result
}

// FindHighestRated は最も評価の高いトイレを見つける
func FindHighestRated(toilets []model.RankedToilet) *model.RankedToilet {
	if len(toilets) == 0 {
		return nil
	}
	highest := &toilets[0]
	for i := range toilets {
		if toilets[i].CleanlinessRating > highest.CleanlinessRating {
			highest = &toilets[i]
		}
	}
	return highest
}

// FindNearest は最も近いトイレを見つける。距離が全件不明ならnilを返す
func FindNearest(toilets []model.RankedToilet) *model.RankedToilet {
	var nearest *model.RankedToilet
	for i := range toilets {
		if !toilets[i].HasDistance() {
			continue
		}
		if nearest == nil || toilets[i].DistanceKm < nearest.DistanceKm {
			nearest = &toilets[i]
		}
	}
	return nearest
}

// Truncate は先頭からn件だけを残す
func Truncate(toilets []model.RankedToilet, n int) []model.RankedToilet {
	if n < 0 || len(toilets) <= n {
		return toilets
	}
	return toilets[:n]
}
