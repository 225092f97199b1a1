package model

// GenieQueryRequest POST /genie/query のリクエストボディ
type GenieQueryRequest struct {
	SessionID string  `json:"session_id"` // 空の場合は新規セッションを発行
	Text      string  `json:"text" validate:"required"`
	Location  *LatLng `json:"location"` // 現在地（不明な場合はnull）
}

// GenieQueryResponse POST /genie/query のレスポンス
type GenieQueryResponse struct {
	SessionID string         `json:"session_id"`
	Message   string         `json:"message"`
	Results   []RankedToilet `json:"results"`
	Intent    string         `json:"intent"`
}

// CreateToiletRequest POST /toilets のリクエストボディ
type CreateToiletRequest struct {
	Name              string   `json:"name" validate:"required"`
	Address           string   `json:"address" validate:"required"`
	Lat               float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lng               float64  `json:"lng" validate:"required,min=-180,max=180"`
	Price             float64  `json:"price" validate:"min=0"`
	CleanlinessRating float64  `json:"cleanliness_rating" validate:"min=0,max=5"`
	Tags              []string `json:"tags"`
	Images            []string `json:"images"`
}

// CreateToiletResponse POST /toilets のレスポンス
type CreateToiletResponse struct {
	Status   string `json:"status"`
	ToiletID string `json:"toilet_id"`
}

// UpdateToiletStatusRequest PATCH /toilets/:id/status のリクエストボディ
type UpdateToiletStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed maintenance"`
}

// AddReviewRequest POST /toilets/:id/reviews のリクエストボディ
type AddReviewRequest struct {
	ProfileID string   `json:"profile_id" validate:"required"`
	Rating    float64  `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment"`
	Images    []string `json:"images"`
}

// AddReviewResponse POST /toilets/:id/reviews のレスポンス
// レビュー追加後に再計算されたトイレの評価を返す
type AddReviewResponse struct {
	Status      string  `json:"status"`
	ReviewID    string  `json:"review_id"`
	NewRating   float64 `json:"new_rating"`
	ReviewCount int     `json:"review_count"`
}

// GetToiletsResponse GET /toilets のレスポンス
type GetToiletsResponse struct {
	Toilets []Toilet `json:"toilets"`
}

// GetReviewsResponse GET /toilets/:id/reviews のレスポンス
type GetReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

// SaveProfileRequest PUT /profiles/:id のリクエストボディ
type SaveProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}

// UserStats ユーザーの利用状況
type UserStats struct {
	ReviewsWritten int `json:"reviews_written"`
	FavoritesCount int `json:"favorites_count"`
}

// HistoryEntry ジーニーへの問い合わせ履歴の1件
type HistoryEntry struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	Intent    string `json:"intent"`
	AskedAt   string `json:"asked_at"`
}

// GetHistoryResponse GET /genie/history/:sessionId のレスポンス
type GetHistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// UploadImageResponse POST /images のレスポンス
type UploadImageResponse struct {
	URL string `json:"url"`
}
