package model

// QueryCondition テキストクエリ1件（またはサブクエリ1句）から抽出した構造化条件
// パースのたびに新規作成され、応答生成後は破棄される
type QueryCondition struct {
	MinRating     *float64 // 最低評価（nilは指定なし）
	PriceClass    string   // "free" | "paid" | ""（指定なし）
	RequiredTags  []string // 必須タグ（全て持つ必要がある）
	MaxDistanceKm *float64 // 最大距離km（nilは指定なし）
	Limit         *int     // 結果件数の上限（nilは指定なし）
	SortKey       string   // 並び替えキー（デフォルトはrating）
}

// HasAny 非デフォルトの条件が1つでも含まれているかチェック
// 並び替えキーのみの指定は条件とみなさない
func (c *QueryCondition) HasAny() bool {
	return c.MinRating != nil ||
		c.PriceClass != "" ||
		len(c.RequiredTags) > 0 ||
		c.MaxDistanceKm != nil ||
		c.Limit != nil
}

// GenieResponse ジーニーの唯一の出力。常に整形済みで返り、エラーにはならない
type GenieResponse struct {
	Message string         `json:"message"`
	Results []RankedToilet `json:"results"` // 表示用に最大5件
	Intent  string         `json:"intent"`  // select | filter | search | none
}

// Recommendation おすすめ計算の結果。説明キャッシュに1件だけ保持される
type Recommendation struct {
	Winner     ScoredToilet   // 最高スコアのトイレ
	Candidates []ScoredToilet // スコア順の候補（最大5件）
	Reasons    []string       // 根拠となった要因の文章断片
}

// ScoredToilet おすすめスコア計算の途中結果
type ScoredToilet struct {
	RankedToilet
	Score float64
}

// ToiletStats 全件を対象とした統計情報
type ToiletStats struct {
	Total      int `json:"total"`
	Free       int `json:"free"`
	Paid       int `json:"paid"`
	HighRated  int `json:"high_rated"` // 評価4以上
	WithBidet  int `json:"with_bidet"`
	Accessible int `json:"accessible"`
	WithPaper  int `json:"with_paper"`
}
