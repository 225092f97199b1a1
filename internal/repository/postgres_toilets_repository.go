package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/infrastructure/database"
)

type PostgresToiletsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresToiletsRepository(client *database.PostgreSQLClient) repository.ToiletsRepository {
	return &PostgresToiletsRepository{
		client: client,
	}
}

// ToiletResult SQLクエリの結果を受け取るための構造体
// tagsとimagesはJSONB文字列のまま受け取り、ToToiletで配列に戻す
type ToiletResult struct {
	ID                string
	Name              string
	Address           string
	Lat               float64
	Lng               float64
	CleanlinessRating float64
	ReviewCount       int
	Price             float64
	Tags              sql.NullString
	Images            sql.NullString
	Status            string
	DistanceMeters    float64
}

// ToToilet ToiletResultをmodel.Toiletに変換
func (tr *ToiletResult) ToToilet() (*model.Toilet, error) {
	toilet := &model.Toilet{
		ID:                tr.ID,
		Name:              tr.Name,
		Address:           tr.Address,
		Lat:               tr.Lat,
		Lng:               tr.Lng,
		CleanlinessRating: tr.CleanlinessRating,
		ReviewCount:       tr.ReviewCount,
		Price:             tr.Price,
		Status:            tr.Status,
	}

	if tr.Tags.Valid && tr.Tags.String != "" {
		if err := json.Unmarshal([]byte(tr.Tags.String), &toilet.Tags); err != nil {
			return nil, fmt.Errorf("tags JSONBパースエラー: %w", err)
		}
	}
	if tr.Images.Valid && tr.Images.String != "" {
		if err := json.Unmarshal([]byte(tr.Images.String), &toilet.Images); err != nil {
			return nil, fmt.Errorf("images JSONBパースエラー: %w", err)
		}
	}

	return toilet, nil
}

const toiletColumns = `t.id, t.name, t.address, t.lat, t.lng, t.cleanliness_rating, t.review_count, t.price, t.tags, t.images, t.status`

func scanToiletRow(scan func(dest ...interface{}) error, withDistance bool) (*model.Toilet, error) {
	var result ToiletResult
	dest := []interface{}{
		&result.ID, &result.Name, &result.Address, &result.Lat, &result.Lng,
		&result.CleanlinessRating, &result.ReviewCount, &result.Price,
		&result.Tags, &result.Images, &result.Status,
	}
	if withDistance {
		dest = append(dest, &result.DistanceMeters)
	}

	if err := scan(dest...); err != nil {
		return nil, fmt.Errorf("トイレデータスキャンエラー: %w", err)
	}

	return result.ToToilet()
}

func (r *PostgresToiletsRepository) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	query := `SELECT ` + toiletColumns + ` FROM toilets t WHERE t.id = $1`

	row := r.client.DB.QueryRowContext(ctx, query, id)

	toilet, err := scanToiletRow(row.Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("トイレID %s が見つかりません", id)
		}
		return nil, fmt.Errorf("トイレデータの取得失敗: %w", err)
	}

	return toilet, nil
}

func (r *PostgresToiletsRepository) GetAll(ctx context.Context) ([]model.Toilet, error) {
	query := `SELECT ` + toiletColumns + ` FROM toilets t ORDER BY t.cleanliness_rating DESC`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("全トイレデータの取得失敗: %w", err)
	}
	defer rows.Close()

	var toilets []model.Toilet
	for rows.Next() {
		toilet, err := scanToiletRow(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		toilets = append(toilets, *toilet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return toilets, nil
}

func (r *PostgresToiletsRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error) {
	if _, err := NewSearchBound(minLng, minLat, maxLng, maxLat); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + toiletColumns + `
		FROM toilets t
		WHERE ST_Intersects(
			t.location::geometry,
			ST_MakeEnvelope($1, $2, $3, $4, 4326)
		)
	`

	rows, err := r.client.DB.QueryContext(ctx, query, minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, fmt.Errorf("境界ボックス検索エラー: %w", err)
	}
	defer rows.Close()

	var toilets []model.Toilet
	for rows.Next() {
		toilet, err := scanToiletRow(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		toilets = append(toilets, *toilet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return toilets, nil
}

func (r *PostgresToiletsRepository) GetNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Toilet, error) {
	// PostGIS関数を使用した効率的な周辺検索
	query := `
		SELECT ` + toiletColumns + `,
			ST_Distance(
				ST_GeogFromText('POINT(' || $2 || ' ' || $1 || ')'),
				t.location::geography
			) as distance_meters
		FROM toilets t
		WHERE ST_DWithin(
			ST_GeogFromText('POINT(' || $2 || ' ' || $1 || ')'),
			t.location::geography,
			$3
		)
		ORDER BY distance_meters
		LIMIT 50
	`

	rows, err := r.client.DB.QueryContext(ctx, query, lat, lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("周辺トイレ検索失敗: %w", err)
	}
	defer rows.Close()

	var toilets []model.Toilet
	for rows.Next() {
		toilet, err := scanToiletRow(rows.Scan, true)
		if err != nil {
			return nil, err
		}
		toilets = append(toilets, *toilet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return toilets, nil
}

func (r *PostgresToiletsRepository) Create(ctx context.Context, toilet *model.Toilet) error {
	tagsJSON, err := json.Marshal(toilet.Tags)
	if err != nil {
		return fmt.Errorf("tags JSONマーシャルエラー: %w", err)
	}
	imagesJSON, err := json.Marshal(toilet.Images)
	if err != nil {
		return fmt.Errorf("images JSONマーシャルエラー: %w", err)
	}

	query := `
		INSERT INTO toilets (id, name, address, lat, lng, location, cleanliness_rating, review_count, price, tags, images, status)
		VALUES ($1, $2, $3, $4, $5, ST_GeogFromText('POINT(' || $5 || ' ' || $4 || ')'), $6, $7, $8, $9::jsonb, $10::jsonb, $11)
	`

	_, err = r.client.DB.ExecContext(ctx, query,
		toilet.ID, toilet.Name, toilet.Address, toilet.Lat, toilet.Lng,
		toilet.CleanlinessRating, toilet.ReviewCount, toilet.Price,
		string(tagsJSON), string(imagesJSON), toilet.Status)
	if err != nil {
		return fmt.Errorf("トイレデータの作成失敗: %w", err)
	}

	return nil
}

func (r *PostgresToiletsRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.client.DB.ExecContext(ctx, `UPDATE toilets SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("トイレステータスの更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("トイレID %s が見つかりません", id)
	}

	return nil
}

func (r *PostgresToiletsRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	result, err := r.client.DB.ExecContext(ctx,
		`UPDATE toilets SET cleanliness_rating = $2, review_count = $3 WHERE id = $1`,
		id, rating, reviewCount)
	if err != nil {
		return fmt.Errorf("トイレ評価の更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("トイレID %s が見つかりません", id)
	}

	return nil
}
