package genie

import (
	"fmt"
	"regexp"
	"strings"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
)

// matcherRule はフォールバックカスケードの1ルール
// 優先順位は制御フローではなくmatcherRulesの並び順として宣言される
type matcherRule struct {
	name         string
	applies      func(query string) bool
	run          func(e *Engine, query string) (model.GenieResponse, bool)
	emptyMessage string // 該当したがフィルタ結果が空だった場合の定型文
}

// カスケード用のキーワードパターン
var (
	niceGoodRe   = regexp.MustCompile(`\bnice\b|\bgood\b`)
	cleanestRe   = regexp.MustCompile(`\bcleanest\b|\bbest\b|\bhighest rating\b|\btop rated\b`)
	freeWordsRe  = regexp.MustCompile(`\bfree\b|\bcheap\b|\bno cost\b`)
	paidWordsRe  = regexp.MustCompile(`\bpaid\b|\bcost money\b`)
	nearestRe    = regexp.MustCompile(`\bnearest\b|\bclosest\b|\bnearby\b`)
	fourStarRe   = regexp.MustCompile(`\b4\b|\bfour\b|\bgood rating\b`)
	exactNearSet = map[string]struct{}{"near": {}, "nearby": {}, "close": {}}
)

// matcherRules はカスケードの全ルールを優先順に並べたテーブル
// 最初に結果が空でなかったルールが応答を返す
var matcherRules = []matcherRule{
	{
		// 単体の"clean"は広い意味（評価4以上またはCleanタグ）で扱う
		// 長いクエリに含まれる"clean"（下のclean_tagルール）より意図的に広い
		name:    "clean_exact",
		applies: func(query string) bool { return query == "clean" },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool {
				return t.CleanlinessRating >= 4 || t.HasTag(model.TagClean)
			})
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByRating(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s for you! ✨", helper.Pluralize(len(results), "sparkling clean toilet")),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: "I couldn't find any clean toilets nearby. Sorry!",
	},
	{
		name: "near_exact",
		applies: func(query string) bool {
			_, ok := exactNearSet[query]
			return ok
		},
		run:          runNearest,
		emptyMessage: "I couldn't find any toilets nearby.",
	},
	{
		name:    "nice_good",
		applies: func(query string) bool { return niceGoodRe.MatchString(query) },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool {
				return t.CleanlinessRating >= 4
			})
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByRating(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s (4⭐+) nearby! ⭐", helper.Pluralize(len(results), "highly rated toilet")),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: "I couldn't find any toilets with 4+ star ratings nearby.",
	},
	{
		name:    "cleanest",
		applies: func(query string) bool { return cleanestRe.MatchString(query) },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.snapshot()
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByRating(results)
			best := results[0]
			results = helper.Truncate(results, maxDisplayResults)
			message := fmt.Sprintf("The cleanest toilet is **%s** with a %.1f⭐ rating", best.Name, best.CleanlinessRating)
			if distText := helper.FormatDistance(best.DistanceKm); distText != "" {
				message += ", " + distText
			}
			return model.GenieResponse{
				Message: message + "! ✨",
				Results: results,
				Intent:  model.IntentSelect,
			}, true
		},
		emptyMessage: "I couldn't find any toilets nearby. Try adding some locations first!",
	},
	{
		name:    "free",
		applies: func(query string) bool { return freeWordsRe.MatchString(query) },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool { return t.IsFree() })
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByDistance(results)
			nearest := results[0]
			count := len(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s! The nearest is **%s**. 💰", helper.Pluralize(count, "free toilet"), nearest.Name),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: "I couldn't find any free toilets nearby. Most toilets cost around RM 0.50-2.00.",
	},
	{
		name:    "paid",
		applies: func(query string) bool { return paidWordsRe.MatchString(query) },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool { return !t.IsFree() })
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			minPrice, maxPrice := priceRange(results)
			count := len(results)
			helper.SortByRating(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s. Prices range from RM%.2f to RM%.2f.", helper.Pluralize(count, "paid toilet"), minPrice, maxPrice),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: "All nearby toilets are free!",
	},
	makeTagRule("bidet", regexp.MustCompile(`\bbidets?\b`), model.TagBidet,
		"Yes! I found %s with bidet. The nearest is **%s**. 💦",
		"Sorry, I don't see any toilets with bidets nearby."),
	makeTagRule("accessible", regexp.MustCompile(`\baccessible\b|\bwheelchair\b|\bdisabled\b`), model.TagAccessible,
		"I found %s nearby! ♿ The nearest is **%s**.",
		"I couldn't find any accessible toilets nearby."),
	makeTagRule("baby_changing", regexp.MustCompile(`\bbaby\b|\bchanging\b|\bdiaper\b`), model.TagBabyChanging,
		"I found %s with baby changing facilities! 👶 The nearest is **%s**.",
		"I couldn't find any toilets with baby changing facilities nearby."),
	makeTagRule("basic", regexp.MustCompile(`\bbasic\b|\bsimple\b|\bstandard\b`), model.TagBasic,
		"I found %s with basic facilities. The nearest is **%s**.",
		"I couldn't find any basic toilets nearby."),
	{
		// 2語以上のクエリに含まれる"clean"は狭い意味（Cleanタグのみ）で扱う
		name: "clean_tag",
		applies: func(query string) bool {
			return len(strings.Fields(query)) > 1 &&
				strings.Contains(query, "clean") &&
				!strings.Contains(query, "cleanest")
		},
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool { return t.HasTag(model.TagClean) })
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByRating(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s tagged as clean! ✨", helper.Pluralize(len(results), "toilet")),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: "I couldn't find any toilets tagged as clean nearby.",
	},
	makeTagRule("dirty", regexp.MustCompile(`\bdirty\b|\bmessy\b|\bunclean\b`), model.TagDirty,
		"I found %s flagged as dirty. You may want to avoid these! The nearest is **%s**.",
		"Good news! No toilets are flagged as dirty nearby."),
	makeTagRule("premium", regexp.MustCompile(`\bpremium\b|\bluxury\b|\bfancy\b`), model.TagPremium,
		"I found %s nearby! 💎 The nearest is **%s**.",
		"I couldn't find any premium toilets nearby."),
	makeTagRule("toilet_paper", regexp.MustCompile(`\btoilet paper\b|\bpaper\b|\btissue\b`), model.TagToiletPaper,
		"I found %s with toilet paper provided! 🧻 The nearest is **%s**.",
		"I couldn't find any toilets with toilet paper provided nearby."),
	{
		name:         "nearest",
		applies:      func(query string) bool { return nearestRe.MatchString(query) },
		run:          runNearest,
		emptyMessage: "I couldn't find any toilets nearby.",
	},
	{
		name:    "four_star",
		applies: func(query string) bool { return fourStarRe.MatchString(query) },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool {
				return t.CleanlinessRating >= 4
			})
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByRating(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s (4⭐+) nearby! ⭐", helper.Pluralize(len(results), "highly rated toilet")),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: "I couldn't find any toilets with 4+ star ratings nearby.",
	},
	{
		name:    "name_search",
		applies: func(query string) bool { return len(query) > 2 },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool {
				return strings.Contains(strings.ToLower(t.Name), query) ||
					strings.Contains(strings.ToLower(t.Address), query)
			})
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByRating(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf("I found %s matching \"%s\". Check the list! 🔍", helper.Pluralize(len(results), "toilet"), query),
				Results: results,
				Intent:  model.IntentSearch,
			}, true
		},
	},
}

// runMatchers はカスケードを順に評価し、最初に結果を出せたルールの応答を返す
// どのルールも結果を出せなかったが該当自体はあった場合、
// 最初に該当したルールの定型文（空結果の説明）を返す
func (e *Engine) runMatchers(query string) (model.GenieResponse, bool) {
	firstEmptyMessage := ""
	for _, rule := range matcherRules {
		if !rule.applies(query) {
			continue
		}
		if resp, ok := rule.run(e, query); ok {
			return resp, true
		}
		if firstEmptyMessage == "" && rule.emptyMessage != "" {
			firstEmptyMessage = rule.emptyMessage
		}
	}
	if firstEmptyMessage != "" {
		return model.GenieResponse{Message: firstEmptyMessage, Intent: model.IntentNone}, true
	}
	return model.GenieResponse{}, false
}

// runNearest は最寄りのトイレを選んでフォーカスさせる
// 位置情報がない場合は謝罪ではなく明示的に位置情報の有効化を求める
func runNearest(e *Engine, query string) (model.GenieResponse, bool) {
	if e.location == nil {
		return model.GenieResponse{
			Message: "I need your location to find the nearest toilet. Please enable location services! 📍",
			Intent:  model.IntentNone,
		}, true
	}
	results := e.snapshot()
	if len(results) == 0 {
		return model.GenieResponse{}, false
	}
	helper.SortByDistance(results)
	nearest := results[0]
	results = helper.Truncate(results, maxDisplayResults)
	return model.GenieResponse{
		Message: fmt.Sprintf("The nearest toilet is **%s**, %s! 📍", nearest.Name, helper.FormatDistance(nearest.DistanceKm)),
		Results: results,
		Intent:  model.IntentSelect,
	}, true
}

// makeTagRule は設備タグで絞り込む定型ルールを生成する
func makeTagRule(name string, re *regexp.Regexp, tag, foundFormat, emptyMessage string) matcherRule {
	return matcherRule{
		name:    name,
		applies: func(query string) bool { return re.MatchString(query) },
		run: func(e *Engine, query string) (model.GenieResponse, bool) {
			results := e.filterToilets(func(t model.RankedToilet) bool { return t.HasTag(tag) })
			if len(results) == 0 {
				return model.GenieResponse{}, false
			}
			helper.SortByDistance(results)
			nearest := results[0]
			count := len(results)
			results = helper.Truncate(results, maxDisplayResults)
			return model.GenieResponse{
				Message: fmt.Sprintf(foundFormat, helper.Pluralize(count, "toilet"), nearest.Name),
				Results: results,
				Intent:  model.IntentFilter,
			}, true
		},
		emptyMessage: emptyMessage,
	}
}

// filterToilets はスナップショットを述語で絞り込む
func (e *Engine) filterToilets(predicate func(t model.RankedToilet) bool) []model.RankedToilet {
	var results []model.RankedToilet
	for _, t := range e.snapshot() {
		if predicate(t) {
			results = append(results, t)
		}
	}
	return results
}

// priceRange は有料トイレの料金の最小・最大を求める
func priceRange(toilets []model.RankedToilet) (float64, float64) {
	minPrice, maxPrice := toilets[0].Price, toilets[0].Price
	for _, t := range toilets {
		if t.Price < minPrice {
			minPrice = t.Price
		}
		if t.Price > maxPrice {
			maxPrice = t.Price
		}
	}
	return minPrice, maxPrice
}
