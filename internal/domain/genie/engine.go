package genie

import (
	"fmt"
	"regexp"
	"strings"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
)

// maxDisplayResults UIがカードリストとして描画できる件数の上限
const maxDisplayResults = 5

// Engine は1クエリ分の解釈・絞り込み・ランキングを行う
// トイレ一覧は呼び出し時点のスナップショットとして距離付与済みの浅いコピーを保持し、
// I/Oや元データの変更は一切行わない
type Engine struct {
	toilets  []model.RankedToilet
	location *model.LatLng
	session  *Session
}

// NewEngine は新しいEngineインスタンスを作成する
// locationがnilの場合、距離に依存する処理は中立的な挙動（距離不明）に縮退する
func NewEngine(toilets []model.Toilet, location *model.LatLng, session *Session) *Engine {
	if session == nil {
		session = NewSession()
	}
	return &Engine{
		toilets:  helper.WithDistances(toilets, location),
		location: location,
		session:  session,
	}
}

// 会話系インテントの判定パターン
var (
	explanationRe    = regexp.MustCompile(`\bwhy\b|\bexplain\b|\breason\b`)
	recommendationRe = regexp.MustCompile(`\brecommend\b|\bsuggest\b|\bbest option\b`)
	comparisonRe     = regexp.MustCompile(`\bcompare\b|\bvs\b|\bversus\b`)
	statisticsRe     = regexp.MustCompile(`\bhow many\b|\bcount\b|\bstats\b|\bstatistics\b`)
	greetingRe       = regexp.MustCompile(`^(hi|hello|hey)[!. ]*$|^help[!?. ]*$`)
)

// HandleQuery はテキストクエリを解釈して応答を生成する唯一のエントリポイント
// 決してエラーやpanicにはならず、常に整形済みのGenieResponseを返す
func (e *Engine) HandleQuery(text string) model.GenieResponse {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return e.helpResponse()
	}

	// 会話系インテントを先に判定する
	// "why"や"recommend"のような特徴的な語は絞り込みクエリには現れない
	switch {
	case explanationRe.MatchString(query):
		return e.handleExplanation()
	case recommendationRe.MatchString(query):
		return e.handleRecommendation()
	case comparisonRe.MatchString(query):
		return e.handleComparison()
	case statisticsRe.MatchString(query):
		return e.handleStatistics()
	case greetingRe.MatchString(query):
		return e.greetingResponse()
	}

	// 複合クエリ（"or"は和集合、"and"は積集合）
	if strings.Contains(query, " or ") {
		if resp, ok := e.handleCompound(query, " or ", false); ok {
			return resp
		}
	} else if strings.Contains(query, " and ") {
		if resp, ok := e.handleCompound(query, " and ", true); ok {
			return resp
		}
	}

	// 構造化条件の抽出
	cond := ParseConditions(query)
	if cond.HasAny() {
		return e.handleConditions(cond)
	}

	// 単一キーワードのフォールバックカスケード
	if resp, ok := e.runMatchers(query); ok {
		return resp
	}

	return e.helpResponse()
}

// handleConditions は抽出された構造化条件を全て連言として適用する
func (e *Engine) handleConditions(cond *model.QueryCondition) model.GenieResponse {
	// 距離条件は基準地点がないと評価できないため、明示的に位置情報を求める
	if cond.MaxDistanceKm != nil && e.location == nil {
		return e.needLocationResponse()
	}

	filtered := FilterByCondition(e.snapshot(), cond)
	if len(filtered) == 0 {
		return model.GenieResponse{
			Message: e.noMatchMessage(cond),
			Intent:  model.IntentNone,
		}
	}

	sortResults(filtered, cond.SortKey)
	if cond.Limit != nil {
		filtered = helper.Truncate(filtered, *cond.Limit)
	}
	filtered = helper.Truncate(filtered, maxDisplayResults)

	return model.GenieResponse{
		Message: fmt.Sprintf("I found %s %s! 🔍", helper.Pluralize(len(filtered), "toilet"), describeCondition(cond)),
		Results: filtered,
		Intent:  model.IntentFilter,
	}
}

// handleCompound は"or"/"and"で結合された複合クエリを処理する
// 解釈できるサブクエリが1つもない場合はokをfalseにして通常の解析に委ねる
func (e *Engine) handleCompound(query, separator string, intersect bool) (model.GenieResponse, bool) {
	clauses := strings.Split(query, separator)

	var predicates []clausePredicate
	for _, clause := range clauses {
		if pred, ok := parseClause(strings.TrimSpace(clause)); ok {
			predicates = append(predicates, pred)
		}
	}
	if len(predicates) == 0 {
		return model.GenieResponse{}, false
	}

	var results []model.RankedToilet
	if intersect {
		// 全ての句の述語を満たすものだけを残す
		for _, t := range e.snapshot() {
			matchesAll := true
			for _, pred := range predicates {
				if !pred.matches(t) {
					matchesAll = false
					break
				}
			}
			if matchesAll {
				results = append(results, t)
			}
		}
	} else {
		// いずれかの句の述語を満たすものの和集合（IDで重複除去）
		for _, pred := range predicates {
			for _, t := range e.snapshot() {
				if pred.matches(t) {
					results = append(results, t)
				}
			}
		}
		results = helper.DeduplicateByID(results)
	}

	var descriptions []string
	for _, pred := range predicates {
		descriptions = append(descriptions, pred.description)
	}
	joiner := " or "
	if intersect {
		joiner = " and "
	}
	described := strings.Join(descriptions, joiner)

	if len(results) == 0 {
		return model.GenieResponse{
			Message: fmt.Sprintf("Sorry, no toilet matches %s. Try relaxing one of the conditions!", described),
			Intent:  model.IntentNone,
		}, true
	}

	helper.SortByRating(results)
	results = helper.Truncate(results, maxDisplayResults)

	return model.GenieResponse{
		Message: fmt.Sprintf("I found %s matching %s! 🔍", helper.Pluralize(len(results), "toilet"), described),
		Results: results,
		Intent:  model.IntentFilter,
	}, true
}

// noMatchMessage は条件に合う結果がなかった理由を条件ごとに説明する
func (e *Engine) noMatchMessage(cond *model.QueryCondition) string {
	unsatisfiable := describeUnsatisfiable(e.snapshot(), cond)
	if len(unsatisfiable) == 0 {
		return fmt.Sprintf("I couldn't find any toilet %s. Each condition matches something, but not together. Try relaxing one!", describeCondition(cond))
	}
	return fmt.Sprintf("I couldn't find any toilet %s because no toilet is %s.", describeCondition(cond), helper.JoinWithAnd(unsatisfiable))
}

// snapshot は距離付与済みスナップショットの浅いコピーを返す
// 各ハンドラーが自由にソートしても元の順序が壊れないようにする
func (e *Engine) snapshot() []model.RankedToilet {
	copied := make([]model.RankedToilet, len(e.toilets))
	copy(copied, e.toilets)
	return copied
}

// needLocationResponse は距離依存クエリで位置情報がない場合の応答
func (e *Engine) needLocationResponse() model.GenieResponse {
	return model.GenieResponse{
		Message: "I need your location to search by distance. Please enable location services! 📍",
		Intent:  model.IntentNone,
	}
}

// greetingResponse は挨拶・ヘルプ要求への応答
func (e *Engine) greetingResponse() model.GenieResponse {
	return model.GenieResponse{
		Message: "Hi! I'm your Toilet Genie ✨. I can help you find toilets by rating, price, facilities, or distance. Try asking: 'Find the cleanest toilet' or 'Show me free toilets with bidet'",
		Intent:  model.IntentNone,
	}
}

// helpResponse はどのルールにも該当しなかった場合の汎用ヘルプ応答
func (e *Engine) helpResponse() model.GenieResponse {
	return model.GenieResponse{
		Message: "I can help you find toilets by:\n• **Rating**: 'cleanest', '4 star', 'best'\n• **Price**: 'free', 'paid'\n• **Facilities**: 'bidet', 'accessible', 'baby changing', 'premium'\n• **Distance**: 'nearest', 'closest', 'within 500m'\n• **Search**: Just type a name or location!\n\nTry asking: 'Find free toilets with bidet' or 'Show me the nearest premium toilet' ✨",
		Intent:  model.IntentNone,
	}
}
