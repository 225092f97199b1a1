package genie

import (
	"fmt"
	"sort"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
)

// 総合スコアの重み付け
// 評価と距離が支配的で、料金・設備・レビュー数は補正項として効く
const (
	weightRating   = 0.40
	weightDistance = 0.30
	weightValue    = 0.15
	weightFacility = 0.10
	weightReviews  = 0.05
)

// scoreTieEpsilon この差以内のスコアは同点として評価・距離で順位を決める
const scoreTieEpsilon = 0.1

// minCandidateScore おすすめ候補リストに載せるスコアの下限
const minCandidateScore = 2.0

// minPreferredRating おすすめ対象として優先する評価の下限
// これ以上のトイレが1件でもあれば、それ未満は候補に入らない
const minPreferredRating = 3.0

// minCandidateCount 候補リストに最低限載せる件数（母数が足りない場合を除く）
const minCandidateCount = 3

// openingPhrases おすすめの書き出しの言い回し（セッションの乱数で1つ選ぶ）
var openingPhrases = []string{
	"I recommend",
	"My top pick is",
	"You should definitely try",
	"The genie's choice is",
}

// scoreToilet は1件のトイレの総合スコアを計算する
// 各項は0〜5のバンドに正規化してから重みを掛ける
func scoreToilet(t model.RankedToilet) float64 {
	return weightRating*t.CleanlinessRating +
		weightDistance*distanceBand(t) +
		weightValue*valueScore(t) +
		weightFacility*facilityBonus(t) +
		weightReviews*reviewScore(t)
}

// distanceBand は距離を0〜5のバンドに変換する
// 位置情報がない場合は中立値1.5を返し、距離項が順位を左右しないようにする
func distanceBand(t model.RankedToilet) float64 {
	if !t.HasDistance() {
		return 1.5
	}
	switch {
	case t.DistanceKm < 0.5:
		return 5
	case t.DistanceKm < 1:
		return 4
	case t.DistanceKm < 2:
		return 3
	case t.DistanceKm < 5:
		return 2
	default:
		return 1
	}
}

// valueScore はコストパフォーマンスを0〜5で評価する
// 無料は満点、有料は料金あたりの評価値（ゼロ除算回避のため+0.1）
func valueScore(t model.RankedToilet) float64 {
	if t.IsFree() {
		return 5
	}
	score := t.CleanlinessRating / (t.Price + 0.1)
	if score < 0 {
		return 0
	}
	return score
}

// facilityBonus は設備タグ1つにつき0.5点を加算する
func facilityBonus(t model.RankedToilet) float64 {
	return 0.5 * float64(len(t.Tags))
}

// reviewScore はレビュー数を0〜5に丸めて評価する（10件で上限）
func reviewScore(t model.RankedToilet) float64 {
	score := float64(t.ReviewCount) / 2
	if score > 5 {
		return 5
	}
	return score
}

// rankByScore はスコア降順に並べる
// スコア差が僅差（0.1以内）の場合は評価の高い方、さらに同点なら近い方を上位にする
func rankByScore(scored []model.ScoredToilet) {
	sort.SliceStable(scored, func(i, j int) bool {
		di := scored[i].Score - scored[j].Score
		if di > scoreTieEpsilon {
			return true
		}
		if di < -scoreTieEpsilon {
			return false
		}
		if scored[i].CleanlinessRating != scored[j].CleanlinessRating {
			return scored[i].CleanlinessRating > scored[j].CleanlinessRating
		}
		return scored[i].DistanceKm < scored[j].DistanceKm
	})
}

// buildReasons は勝者の強みを説明文の断片として列挙する
func buildReasons(winner model.ScoredToilet) []string {
	var reasons []string
	if winner.CleanlinessRating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("an amazing %.1f⭐ rating", winner.CleanlinessRating))
	} else if winner.CleanlinessRating >= 4 {
		reasons = append(reasons, fmt.Sprintf("a great %.1f⭐ rating", winner.CleanlinessRating))
	} else if winner.CleanlinessRating > 0 {
		reasons = append(reasons, fmt.Sprintf("a %.1f⭐ rating", winner.CleanlinessRating))
	}
	if winner.HasDistance() {
		if winner.DistanceKm < 0.5 {
			reasons = append(reasons, fmt.Sprintf("it's super close (%s)", helper.FormatDistance(winner.DistanceKm)))
		} else if winner.DistanceKm < 2 {
			reasons = append(reasons, fmt.Sprintf("it's %s", helper.FormatDistance(winner.DistanceKm)))
		}
	}
	if winner.IsFree() {
		reasons = append(reasons, "it's completely free")
	}
	if len(winner.Tags) > 0 {
		var labels []string
		for _, tag := range winner.Tags {
			labels = append(labels, model.GetTagDisplay(tag))
		}
		reasons = append(reasons, "it has "+helper.JoinWithAnd(labels))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "it's the best of what's around")
	}
	return reasons
}

// handleRecommendation は評価3.0以上のトイレ（1件もなければ全件）をスコアリングして最良の1件を推薦する
// 計算結果はセッションの説明キャッシュに保存され、後続の"why"に使われる
func (e *Engine) handleRecommendation() model.GenieResponse {
	pool := e.snapshot()
	if len(pool) == 0 {
		return model.GenieResponse{
			Message: "I don't have any toilets to recommend right now. Try again later!",
			Intent:  model.IntentNone,
		}
	}

	// 評価3.0以上のトイレを優先し、1件もなければ全体から選ぶ
	preferred := make([]model.RankedToilet, 0, len(pool))
	for _, t := range pool {
		if t.CleanlinessRating >= minPreferredRating {
			preferred = append(preferred, t)
		}
	}
	if len(preferred) > 0 {
		pool = preferred
	}

	scored := make([]model.ScoredToilet, 0, len(pool))
	for _, t := range pool {
		scored = append(scored, model.ScoredToilet{RankedToilet: t, Score: scoreToilet(t)})
	}
	rankByScore(scored)

	// スコア下限を満たす候補が3件に満たない場合は順位上位3件で補う
	var candidates []model.ScoredToilet
	for _, s := range scored {
		if s.Score >= minCandidateScore {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) < minCandidateCount {
		candidates = scored
		if len(candidates) > minCandidateCount {
			candidates = candidates[:minCandidateCount]
		}
	}
	if len(candidates) > maxDisplayResults {
		candidates = candidates[:maxDisplayResults]
	}

	winner := candidates[0]
	reasons := buildReasons(winner)

	rec := &model.Recommendation{
		Winner:     winner,
		Candidates: candidates,
		Reasons:    reasons,
	}
	e.session.RememberRecommendation(rec)

	results := make([]model.RankedToilet, 0, len(candidates))
	for _, s := range candidates {
		results = append(results, s.RankedToilet)
	}

	opening := openingPhrases[e.session.rng.Intn(len(openingPhrases))]

	return model.GenieResponse{
		Message: fmt.Sprintf("%s **%s**! It has %s. 🏆 Ask me 'why' for the full breakdown!",
			opening, winner.Name, helper.JoinWithAnd(reasons)),
		Results: results,
		Intent:  model.IntentSelect,
	}
}
