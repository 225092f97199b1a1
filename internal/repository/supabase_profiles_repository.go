package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/infrastructure/database"
)

type SupabaseProfilesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseProfilesRepository(client *database.SupabaseClient) repository.ProfilesRepository {
	return &SupabaseProfilesRepository{
		client: client,
	}
}

func (r *SupabaseProfilesRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var profiles []model.Profile
	data, count, err := r.client.GetClient().From("profiles").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("プロフィールデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &profiles); err != nil {
		return nil, fmt.Errorf("プロフィールデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("プロフィールID %s が見つかりません", id)
	}

	return &profiles[0], nil
}

func (r *SupabaseProfilesRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("プロフィールデータのJSONマーシャル失敗: %w", err)
	}

	// idが衝突した場合は既存行を更新する
	_, _, err = r.client.GetClient().From("profiles").Insert(string(data), true, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("プロフィールデータの保存失敗: %w", err)
	}

	return nil
}

func (r *SupabaseProfilesRepository) UpdateFavorites(ctx context.Context, id string, favorites []string) error {
	payload := map[string]interface{}{"favorites": favorites}

	_, _, err := r.client.GetClient().From("profiles").Update(payload, "", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("お気に入りの更新失敗: %w", err)
	}

	return nil
}
