package repository

import (
	"fmt"

	"github.com/paulmach/orb"

	"ToiletGenie-App/internal/domain/model"
)

// GeoPoint PostGIS POINT 型の JSON 表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// LatLngToGeoPoint model.LatLng を PostGIS POINT 形式に変換
func LatLngToGeoPoint(p model.LatLng) *GeoPoint {
	point := orb.Point{p.Lng, p.Lat}

	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{point.Lon(), point.Lat()},
	}
}

// GeoPointToLatLng PostGIS POINT を model.LatLng に変換
func GeoPointToLatLng(geoPoint *GeoPoint) *model.LatLng {
	if geoPoint == nil || len(geoPoint.Coordinates) < 2 {
		return nil
	}

	point := orb.Point{geoPoint.Coordinates[0], geoPoint.Coordinates[1]}

	return &model.LatLng{
		Lat: point.Lat(),
		Lng: point.Lon(),
	}
}

// NewSearchBound 境界ボックスの座標をorb.Boundとして検証・構築する
func NewSearchBound(minLng, minLat, maxLng, maxLat float64) (orb.Bound, error) {
	if minLng >= maxLng || minLat >= maxLat {
		return orb.Bound{}, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return orb.Bound{}, fmt.Errorf("座標値が有効範囲外です")
	}

	return orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}, nil
}

// ToiletDB Toilet を DB 保存用の形式に変換した構造体（地理情報を含む）
type ToiletDB struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Lat               float64   `json:"lat"`
	Lng               float64   `json:"lng"`
	Location          *GeoPoint `json:"location"`
	CleanlinessRating float64   `json:"cleanliness_rating"`
	ReviewCount       int       `json:"review_count"`
	Price             float64   `json:"price"`
	Tags              []string  `json:"tags"`
	Images            []string  `json:"images"`
	Status            string    `json:"status"`
}

// ToiletToToiletDB model.Toilet を DB 保存用に変換
func ToiletToToiletDB(toilet *model.Toilet) *ToiletDB {
	return &ToiletDB{
		ID:                toilet.ID,
		Name:              toilet.Name,
		Address:           toilet.Address,
		Lat:               toilet.Lat,
		Lng:               toilet.Lng,
		Location:          LatLngToGeoPoint(toilet.ToLatLng()),
		CleanlinessRating: toilet.CleanlinessRating,
		ReviewCount:       toilet.ReviewCount,
		Price:             toilet.Price,
		Tags:              toilet.Tags,
		Images:            toilet.Images,
		Status:            toilet.Status,
	}
}
