package genie

import (
	"fmt"
	"strings"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
)

// closingPhrases 説明の締めの言い回し（セッションの乱数で1つ選ぶ）
var closingPhrases = []string{
	"Trust the genie! ✨",
	"You can't go wrong with this one! 👍",
	"Happy to explain more if you need! 💬",
	"That's my honest genie opinion! 🧞",
}

// handleExplanation は直近のおすすめがなぜ選ばれたかを説明する
// キャッシュは1枠のみなので、常に最後のおすすめ計算の内容を語る
func (e *Engine) handleExplanation() model.GenieResponse {
	rec := e.session.LastRecommendation()
	if rec == nil {
		return model.GenieResponse{
			Message: "I haven't recommended anything yet! Ask me to recommend a toilet first, then I can explain my choice. 🧞",
			Intent:  model.IntentNone,
		}
	}

	winner := rec.Winner

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I picked **%s** because it has %s.", winner.Name, helper.JoinWithAnd(rec.Reasons)))

	// 僅差だった次点候補にも触れる
	if len(rec.Candidates) > 1 {
		runnerUp := rec.Candidates[1]
		if winner.Score-runnerUp.Score <= scoreTieEpsilon {
			sb.WriteString(fmt.Sprintf(" **%s** was a close second, but %s edged it out.", runnerUp.Name, winner.Name))
		} else {
			sb.WriteString(fmt.Sprintf(" It beat %d other candidates, including **%s**.", len(rec.Candidates)-1, runnerUp.Name))
		}
	}

	sb.WriteString(" " + closingPhrases[e.session.rng.Intn(len(closingPhrases))])

	results := make([]model.RankedToilet, 0, len(rec.Candidates))
	for _, s := range rec.Candidates {
		results = append(results, s.RankedToilet)
	}

	return model.GenieResponse{
		Message: sb.String(),
		Results: results,
		Intent:  model.IntentSelect,
	}
}
