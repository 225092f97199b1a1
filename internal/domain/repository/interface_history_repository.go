package repository

import (
	"context"

	"ToiletGenie-App/internal/domain/model"
)

// HistoryRepository ジーニーへの問い合わせ履歴を担うリポジトリのインターフェース
// 履歴はセッションごとに保持され、直近の件数だけが残る
type HistoryRepository interface {
	// Append 問い合わせ履歴を1件追記する（上限を超えた古い履歴は削除される）
	Append(ctx context.Context, entry *model.HistoryEntry) error

	// GetBySessionID セッションの履歴を新しい順に取得
	GetBySessionID(ctx context.Context, sessionID string, limit int) ([]model.HistoryEntry, error)
}
