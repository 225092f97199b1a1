package model

import "math"

// LatLng 緯度経度を表す基本的な型（距離計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// トイレの営業ステータス
const (
	StatusOpen        = "open"
	StatusClosed      = "closed"
	StatusMaintenance = "maintenance"
)

// Toilet 検索対象となるトイレスポットを表すモデル
type Toilet struct {
	ID                string   `json:"id" db:"id"`                                 // ユニークなスポットID
	Name              string   `json:"name" db:"name"`                             // スポット名
	Address           string   `json:"address" db:"address"`                       // 住所
	Lat               float64  `json:"lat" db:"lat"`                               // 緯度
	Lng               float64  `json:"lng" db:"lng"`                               // 経度
	CleanlinessRating float64  `json:"cleanliness_rating" db:"cleanliness_rating"` // 清潔度評価（1〜5、未評価は0）
	ReviewCount       int      `json:"review_count" db:"review_count"`             // レビュー件数
	Price             float64  `json:"price" db:"price"`                           // 料金（0は無料）
	Tags              []string `json:"tags" db:"tags"`                             // 設備タグ（複数対応）
	Images            []string `json:"images" db:"images"`                         // 画像URL一覧
	Status            string   `json:"status" db:"status"`                         // 営業ステータス
}

// ToLatLng トイレの位置情報をLatLng型に変換
func (t *Toilet) ToLatLng() LatLng {
	return LatLng{Lat: t.Lat, Lng: t.Lng}
}

// IsFree 無料かどうか
func (t *Toilet) IsFree() bool {
	return t.Price == 0
}

// HasTag 指定されたタグを持つかチェック
func (t *Toilet) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// HasAllTags 指定された全てのタグを持つかチェック
func (t *Toilet) HasAllTags(tags []string) bool {
	for _, tag := range tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

// RankedToilet 距離を付与した一時的なトイレ情報
// 基準地点が不明な場合、DistanceKmは+Infになる
type RankedToilet struct {
	Toilet
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// HasDistance 距離が計算済みかどうか
func (r *RankedToilet) HasDistance() bool {
	return !math.IsInf(r.DistanceKm, 1)
}

// Review トイレに対するレビュー
type Review struct {
	ID        string   `json:"id" db:"id"`
	ToiletID  string   `json:"toilet_id" db:"toilet_id"`
	ProfileID string   `json:"profile_id" db:"profile_id"`
	UserName  string   `json:"user_name,omitempty"`
	Rating    float64  `json:"rating" db:"rating"`
	Comment   string   `json:"comment" db:"comment"`
	Images    []string `json:"images,omitempty" db:"images"`
	CreatedAt string   `json:"created_at,omitempty" db:"created_at"`
	TimeAgo   string   `json:"time_ago,omitempty"`
}

// Profile ユーザープロフィール（お気に入りを含む）
type Profile struct {
	ID          string   `json:"id" db:"id"`
	DisplayName string   `json:"display_name" db:"display_name"`
	Favorites   []string `json:"favorites" db:"favorites"`
}
