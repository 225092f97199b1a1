package genie

import (
	"fmt"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
)

// ComputeStats はトイレ一覧全体の集計を取る
func ComputeStats(toilets []model.RankedToilet) model.ToiletStats {
	stats := model.ToiletStats{Total: len(toilets)}
	for _, t := range toilets {
		if t.IsFree() {
			stats.Free++
		} else {
			stats.Paid++
		}
		if t.CleanlinessRating >= 4 {
			stats.HighRated++
		}
		if t.HasTag(model.TagBidet) {
			stats.WithBidet++
		}
		if t.HasTag(model.TagAccessible) {
			stats.Accessible++
		}
		if t.HasTag(model.TagToiletPaper) {
			stats.WithPaper++
		}
	}
	return stats
}

// handleStatistics はフィルタ前の全トイレに対する集計を答える
func (e *Engine) handleStatistics() model.GenieResponse {
	stats := ComputeStats(e.toilets)
	if stats.Total == 0 {
		return model.GenieResponse{
			Message: "I don't know about any toilets in this area yet. Be the first to add one! 📝",
			Intent:  model.IntentNone,
		}
	}

	message := fmt.Sprintf(
		"Here's what I know about this area! 📊\n• **%s** in total\n• %d free, %d paid\n• %d rated 4⭐ or above\n• %d with bidet\n• %d accessible\n• %d with toilet paper provided",
		helper.Pluralize(stats.Total, "toilet"),
		stats.Free, stats.Paid,
		stats.HighRated,
		stats.WithBidet,
		stats.Accessible,
		stats.WithPaper,
	)

	return model.GenieResponse{
		Message: message,
		Intent:  model.IntentNone,
	}
}

// handleComparison は一覧の先頭2件を取り上げて比べる
// 評価が高くて遠くもない方が明確な勝者、決められなければ料金、距離の順で判定する
func (e *Engine) handleComparison() model.GenieResponse {
	pool := e.snapshot()
	if len(pool) < 2 {
		return model.GenieResponse{
			Message: "I need at least two toilets to compare. There aren't enough around here yet!",
			Intent:  model.IntentNone,
		}
	}

	a, b := pool[0], pool[1]
	verdict := compareVerdict(a, b)

	message := fmt.Sprintf(
		"Let's compare! ⚖️\n• **%s**: %.1f⭐, %s%s\n• **%s**: %.1f⭐, %s%s\n\n%s",
		a.Name, a.CleanlinessRating, helper.FormatPrice(a.Price), distanceSuffix(a),
		b.Name, b.CleanlinessRating, helper.FormatPrice(b.Price), distanceSuffix(b),
		verdict,
	)

	return model.GenieResponse{
		Message: message,
		Results: []model.RankedToilet{a, b},
		Intent:  model.IntentNone,
	}
}

// compareVerdict は2件の優劣を文章で判定する
func compareVerdict(a, b model.RankedToilet) string {
	if a.CleanlinessRating > b.CleanlinessRating && !farther(a, b) {
		return fmt.Sprintf("**%s** wins! Cleaner and no farther away. 🏆", a.Name)
	}
	if b.CleanlinessRating > a.CleanlinessRating && !farther(b, a) {
		return fmt.Sprintf("**%s** wins! Cleaner and no farther away. 🏆", b.Name)
	}
	if a.IsFree() != b.IsFree() {
		winner := a
		if b.IsFree() {
			winner = b
		}
		return fmt.Sprintf("It's close, but **%s** wins on price: it's free! 💰", winner.Name)
	}
	if a.HasDistance() && b.HasDistance() && a.DistanceKm != b.DistanceKm {
		winner := a
		if b.DistanceKm < a.DistanceKm {
			winner = b
		}
		return fmt.Sprintf("Hard to separate them, so **%s** takes it for being closer. 📍", winner.Name)
	}
	return "Honestly, it's a draw. You can't go wrong with either! 🤝"
}

// farther はxがyより遠いかどうか（距離不明同士は遠くない扱い）
func farther(x, y model.RankedToilet) bool {
	if !x.HasDistance() || !y.HasDistance() {
		return false
	}
	return x.DistanceKm > y.DistanceKm
}

// distanceSuffix は距離が分かる場合のみ", 300m away"形式の断片を返す
func distanceSuffix(t model.RankedToilet) string {
	text := helper.FormatDistance(t.DistanceKm)
	if text == "" {
		return ""
	}
	return ", " + text
}
