package genie

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
)

// ratingPatterns 最低評価の抽出パターン
// 5から1の降順で最初にマッチしたものを採用する
var ratingPatterns = []struct {
	value float64
	re    *regexp.Regexp
}{
	{5, regexp.MustCompile(`\b(?:5|five)[ -]?stars?\b`)},
	{4, regexp.MustCompile(`\b(?:4|four)[ -]?stars?\b`)},
	{3, regexp.MustCompile(`\b(?:3|three)[ -]?stars?\b`)},
	{2, regexp.MustCompile(`\b(?:2|two)[ -]?stars?\b`)},
	{1, regexp.MustCompile(`\b(?:1|one)[ -]?stars?\b`)},
}

// 距離・件数・料金の抽出パターン
var (
	distanceUnitRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(kilometers?|kilometres?|km|meters?|metres?|m)\b`)
	distanceQualRe = regexp.MustCompile(`(?:within|less than|under|below)\s+(\d+(?:\.\d+)?)\b`)
	limitRe        = regexp.MustCompile(`(?:top|first|show|list)\s+(\d+)\b`)
	freeRe         = regexp.MustCompile(`\bfree\b|\bcheap\b|\bno cost\b`)
	paidRe         = regexp.MustCompile(`\bpaid\b|\bcost money\b`)
)

// tagPatterns 設備タグのキーワードセット
// 各セットは独立に評価され、複数のタグが同時に付くことがある
// 素の"clean"はここには含めない（単体の"clean"はカスケード側で
// 評価4以上またはCleanタグの広い意味で扱うため）
var tagPatterns = []struct {
	tag string
	re  *regexp.Regexp
}{
	{model.TagBidet, regexp.MustCompile(`\bbidets?\b`)},
	{model.TagAccessible, regexp.MustCompile(`\baccessible\b|\bwheelchair\b|\bdisabled\b`)},
	{model.TagBabyChanging, regexp.MustCompile(`\bbaby\b|\bchanging\b|\bdiaper\b`)},
	{model.TagPremium, regexp.MustCompile(`\bpremium\b|\bluxury\b|\bfancy\b`)},
	{model.TagToiletPaper, regexp.MustCompile(`\btoilet paper\b|\bpaper\b|\btissue\b`)},
	{model.TagPrayerRoom, regexp.MustCompile(`\bprayer\b`)},
	{model.TagDirty, regexp.MustCompile(`\bdirty\b|\bmessy\b|\bunclean\b`)},
	{model.TagBasic, regexp.MustCompile(`\bbasic\b|\bsimple\b|\bstandard\b`)},
	{model.TagCultural, regexp.MustCompile(`\bcultural\b`)},
}

// sortKeyPatterns 並び替えキーの抽出パターン（距離系が最優先）
var (
	sortDistanceRe = regexp.MustCompile(`\bnearest\b|\bclosest\b|\bnearby\b|\bnear\b|\bclose\b|\bdistance\b`)
	sortRatingRe   = regexp.MustCompile(`\bcleanest\b|\bbest\b|\bhighest\b|\btop rated\b|\brating\b|\brated\b`)
	sortNameRe     = regexp.MustCompile(`\bname\b|\balphabetical(?:ly)?\b`)
)

// ParseConditions は小文字化済みクエリから構造化条件を抽出する
// 各抽出器は独立していて抽出順に依存せず、結果を1つの条件レコードにまとめる
func ParseConditions(query string) *model.QueryCondition {
	cond := &model.QueryCondition{SortKey: model.SortByRating}

	// 最低評価（数字または英単語 + star表記、降順で最初のマッチが勝つ）
	for _, p := range ratingPatterns {
		if p.re.MatchString(query) {
			rating := p.value
			cond.MinRating = &rating
			break
		}
	}

	// 最大距離。単位付き表記を優先し、なければ"within N"系の推定に頼る
	if m := distanceUnitRe.FindStringSubmatch(query); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			km := value
			if strings.HasPrefix(m[2], "m") {
				km = value / 1000
			}
			cond.MaxDistanceKm = &km
		}
	} else if m := distanceQualRe.FindStringSubmatch(query); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			// 単位なしの数値は10未満をメートル扱いとしてkmに変換する
			km := value
			if value < 10 {
				km = value / 1000
			}
			cond.MaxDistanceKm = &km
		}
	}

	// 件数上限
	if m := limitRe.FindStringSubmatch(query); m != nil {
		if limit, err := strconv.Atoi(m[1]); err == nil && limit > 0 {
			cond.Limit = &limit
		}
	}

	// 料金クラス（free系を先に判定する）
	if freeRe.MatchString(query) {
		cond.PriceClass = model.PriceClassFree
	} else if paidRe.MatchString(query) {
		cond.PriceClass = model.PriceClassPaid
	}

	// 設備タグ（排他的ではない）
	for _, p := range tagPatterns {
		if p.re.MatchString(query) {
			cond.RequiredTags = append(cond.RequiredTags, p.tag)
		}
	}

	// 並び替えキー
	switch {
	case sortDistanceRe.MatchString(query):
		cond.SortKey = model.SortByDistance
	case sortRatingRe.MatchString(query):
		cond.SortKey = model.SortByRating
	case sortNameRe.MatchString(query):
		cond.SortKey = model.SortByName
	}

	return cond
}

// FilterByCondition は条件の全フィールドを連言として適用する
// 距離条件付きクエリでは距離不明のトイレは除外される
func FilterByCondition(toilets []model.RankedToilet, cond *model.QueryCondition) []model.RankedToilet {
	var filtered []model.RankedToilet
	for _, t := range toilets {
		if !satisfies(t, cond) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// satisfies は1件のトイレが条件を全て満たすかチェックする
func satisfies(t model.RankedToilet, cond *model.QueryCondition) bool {
	if cond.MinRating != nil && t.CleanlinessRating < *cond.MinRating {
		return false
	}
	if cond.PriceClass == model.PriceClassFree && !t.IsFree() {
		return false
	}
	if cond.PriceClass == model.PriceClassPaid && t.IsFree() {
		return false
	}
	if !t.HasAllTags(cond.RequiredTags) {
		return false
	}
	if cond.MaxDistanceKm != nil {
		if !t.HasDistance() || t.DistanceKm > *cond.MaxDistanceKm {
			return false
		}
	}
	return true
}

// sortResults は指定キーで結果を並び替える
func sortResults(toilets []model.RankedToilet, sortKey string) {
	switch sortKey {
	case model.SortByDistance:
		helper.SortByDistance(toilets)
	case model.SortByName:
		helper.SortByName(toilets)
	default:
		helper.SortByRating(toilets)
	}
}

// describeCondition は条件を応答メッセージ用の文章に変換する
func describeCondition(cond *model.QueryCondition) string {
	var parts []string
	if cond.MinRating != nil {
		parts = append(parts, fmt.Sprintf("rated %.0f⭐+", *cond.MinRating))
	}
	if cond.PriceClass == model.PriceClassFree {
		parts = append(parts, "free to use")
	}
	if cond.PriceClass == model.PriceClassPaid {
		parts = append(parts, "paid")
	}
	if len(cond.RequiredTags) > 0 {
		var labels []string
		for _, tag := range cond.RequiredTags {
			labels = append(labels, model.GetTagDisplay(tag))
		}
		parts = append(parts, "with "+helper.JoinWithAnd(labels))
	}
	if cond.MaxDistanceKm != nil {
		if *cond.MaxDistanceKm < 1 {
			parts = append(parts, fmt.Sprintf("within %dm", int(*cond.MaxDistanceKm*1000)))
		} else {
			parts = append(parts, fmt.Sprintf("within %.1fkm", *cond.MaxDistanceKm))
		}
	}
	if len(parts) == 0 {
		return "for you"
	}
	return helper.JoinWithAnd(parts)
}

// describeUnsatisfiable は単独でも1件も満たせない条件の説明を列挙する
// 全条件が個別には満たせるのに組み合わせで空になった場合は空を返す
func describeUnsatisfiable(toilets []model.RankedToilet, cond *model.QueryCondition) []string {
	var unsatisfiable []string

	check := func(partial *model.QueryCondition, label string) {
		if len(FilterByCondition(toilets, partial)) == 0 {
			unsatisfiable = append(unsatisfiable, label)
		}
	}

	if cond.MinRating != nil {
		check(&model.QueryCondition{MinRating: cond.MinRating}, fmt.Sprintf("rated %.0f⭐ or above", *cond.MinRating))
	}
	if cond.PriceClass != "" {
		check(&model.QueryCondition{PriceClass: cond.PriceClass}, cond.PriceClass)
	}
	for _, tag := range cond.RequiredTags {
		check(&model.QueryCondition{RequiredTags: []string{tag}}, "equipped with "+model.GetTagDisplay(tag))
	}
	if cond.MaxDistanceKm != nil {
		check(&model.QueryCondition{MaxDistanceKm: cond.MaxDistanceKm}, "close enough")
	}

	return unsatisfiable
}

// clausePredicate 複合クエリの1句から導かれた述語
type clausePredicate struct {
	matches     func(t model.RankedToilet) bool
	description string
}

// clauseMatchers 複合クエリのサブクエリ用マッチャーセット
// clean系は評価4以上、near系は1km未満、free系は無料、設備語はタグ所持で判定する
var (
	clauseCleanRe = regexp.MustCompile(`\bclean\b|\bcleanest\b|\bbest\b|\bnice\b|\bgood\b|\brated\b|\brating\b`)
	clauseNearRe  = regexp.MustCompile(`\bnear\b|\bnearby\b|\bclose\b|\bclosest\b|\bnearest\b`)
	clauseFreeRe  = regexp.MustCompile(`\bfree\b|\bcheap\b|\bno cost\b`)
	clausePaidRe  = regexp.MustCompile(`\bpaid\b|\bcost money\b`)
)

// parseClause は1つのサブクエリを述語に変換する
// 複数のマッチャーに該当した場合は句内で連言として結合する
func parseClause(clause string) (clausePredicate, bool) {
	var predicates []func(t model.RankedToilet) bool
	var descriptions []string

	if clauseCleanRe.MatchString(clause) {
		predicates = append(predicates, func(t model.RankedToilet) bool {
			return t.CleanlinessRating >= 4
		})
		descriptions = append(descriptions, "highly rated")
	}
	if clauseNearRe.MatchString(clause) {
		predicates = append(predicates, func(t model.RankedToilet) bool {
			return t.HasDistance() && t.DistanceKm < 1
		})
		descriptions = append(descriptions, "nearby")
	}
	if clauseFreeRe.MatchString(clause) {
		predicates = append(predicates, func(t model.RankedToilet) bool {
			return t.IsFree()
		})
		descriptions = append(descriptions, "free")
	} else if clausePaidRe.MatchString(clause) {
		predicates = append(predicates, func(t model.RankedToilet) bool {
			return !t.IsFree()
		})
		descriptions = append(descriptions, "paid")
	}
	for _, p := range tagPatterns {
		if p.re.MatchString(clause) {
			tag := p.tag
			predicates = append(predicates, func(t model.RankedToilet) bool {
				return t.HasTag(tag)
			})
			descriptions = append(descriptions, model.GetTagDisplay(tag))
		}
	}

	if len(predicates) == 0 {
		return clausePredicate{}, false
	}

	return clausePredicate{
		matches: func(t model.RankedToilet) bool {
			for _, pred := range predicates {
				if !pred(t) {
					return false
				}
			}
			return true
		},
		description: strings.Join(descriptions, " "),
	}, true
}
