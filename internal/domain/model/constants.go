package model

// TagConstants アプリケーションで使用する設備タグの定数
// タグは排他的ではなく、1つのトイレが複数のタグを持てる
const (
	TagBidet        = "Bidet"
	TagAccessible   = "Accessible"
	TagBabyChanging = "Baby Changing"
	TagPremium      = "Premium"
	TagClean        = "Clean"
	TagBasic        = "Basic"
	TagDirty        = "Dirty"
	TagToiletPaper  = "Toilet Paper Provided"
	TagPrayerRoom   = "Prayer Room"
	TagCultural     = "Cultural"
)

// PriceClassConstants 料金クラスの定数
const (
	PriceClassFree = "free"
	PriceClassPaid = "paid"
)

// SortKeyConstants 並び替えキーの定数
const (
	SortByRating   = "rating"
	SortByDistance = "distance"
	SortByName     = "name"
)

// IntentConstants ジーニー応答のインテント定数
const (
	IntentSelect = "select" // 先頭の結果にフォーカスする（地図をパンする）
	IntentFilter = "filter" // 複数件の結果リストを表示する
	IntentSearch = "search" // 名前・住所の部分一致検索が行われた
	IntentNone   = "none"   // 結果を伴わない会話的な応答
)

// TagDisplayMap タグIDから表示用ラベルへのマッピング
var TagDisplayMap = map[string]string{
	TagBidet:        "bidet",
	TagAccessible:   "accessible",
	TagBabyChanging: "baby changing",
	TagPremium:      "premium",
	TagClean:        "clean",
	TagBasic:        "basic",
	TagDirty:        "dirty",
	TagToiletPaper:  "toilet paper",
	TagPrayerRoom:   "prayer room",
	TagCultural:     "cultural",
}

// GetTagDisplay タグIDから表示用ラベルを取得する
func GetTagDisplay(tag string) string {
	if display, ok := TagDisplayMap[tag]; ok {
		return display
	}
	return tag // デフォルトはそのまま返す
}

// GetAllTags 既知の設備タグ一覧を取得する
func GetAllTags() []string {
	return []string{
		TagBidet,
		TagAccessible,
		TagBabyChanging,
		TagPremium,
		TagClean,
		TagBasic,
		TagDirty,
		TagToiletPaper,
		TagPrayerRoom,
		TagCultural,
	}
}
