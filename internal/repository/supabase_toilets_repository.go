package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"ToiletGenie-App/internal/domain/helper"
	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/infrastructure/database"
)

type SupabaseToiletsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseToiletsRepository(client *database.SupabaseClient) repository.ToiletsRepository {
	return &SupabaseToiletsRepository{
		client: client,
	}
}

func (r *SupabaseToiletsRepository) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	var toilets []model.Toilet
	data, count, err := r.client.GetClient().From("toilets").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("トイレデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &toilets); err != nil {
		return nil, fmt.Errorf("トイレデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(toilets) == 0 {
		return nil, fmt.Errorf("トイレID %s が見つかりません", id)
	}

	return &toilets[0], nil
}

func (r *SupabaseToiletsRepository) GetAll(ctx context.Context) ([]model.Toilet, error) {
	var toilets []model.Toilet
	data, count, err := r.client.GetClient().From("toilets").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("全トイレデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &toilets); err != nil {
		return nil, fmt.Errorf("トイレデータのJSONアンマーシャル失敗: %w", err)
	}

	return toilets, nil
}

func (r *SupabaseToiletsRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Toilet, error) {
	bound, err := NewSearchBound(minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, err
	}

	// anonキー接続ではPostGIS関数を直接呼べないため、
	// 全件取得してから境界ボックスで絞り込む（PostGIS版はPostgresToiletsRepository）
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var toilets []model.Toilet
	for _, t := range all {
		if bound.Contains(orb.Point{t.Lng, t.Lat}) {
			toilets = append(toilets, t)
		}
	}

	return toilets, nil
}

func (r *SupabaseToiletsRepository) GetNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Toilet, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	origin := model.LatLng{Lat: lat, Lng: lng}
	radiusKm := float64(radiusMeters) / 1000

	type withDistance struct {
		toilet model.Toilet
		distKm float64
	}

	var nearby []withDistance
	for _, t := range all {
		d := helper.HaversineDistance(origin, t.ToLatLng())
		if d <= radiusKm {
			nearby = append(nearby, withDistance{toilet: t, distKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].distKm < nearby[j].distKm
	})

	toilets := make([]model.Toilet, 0, len(nearby))
	for _, n := range nearby {
		toilets = append(toilets, n.toilet)
	}

	return toilets, nil
}

func (r *SupabaseToiletsRepository) Create(ctx context.Context, toilet *model.Toilet) error {
	// Toilet を DB 保存用の形式に変換（地理情報を含む）
	toiletDB := ToiletToToiletDB(toilet)

	data, err := json.Marshal(toiletDB)
	if err != nil {
		return fmt.Errorf("トイレデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("toilets").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("トイレデータの作成失敗: %w", err)
	}

	return nil
}

func (r *SupabaseToiletsRepository) UpdateStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}

	_, _, err := r.client.GetClient().From("toilets").Update(payload, "", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("トイレステータスの更新失敗: %w", err)
	}

	return nil
}

func (r *SupabaseToiletsRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	payload := map[string]interface{}{
		"cleanliness_rating": rating,
		"review_count":       reviewCount,
	}

	_, _, err := r.client.GetClient().From("toilets").Update(payload, "", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("トイレ評価の更新失敗: %w", err)
	}

	return nil
}
