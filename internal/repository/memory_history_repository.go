package repository

import (
	"context"
	"sync"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
)

// MemoryHistoryRepository プロセス内メモリに履歴を保持するリポジトリ
// Firestoreが使えない環境（ローカル開発・単体テスト）向けのフォールバック
type MemoryHistoryRepository struct {
	mu       sync.Mutex
	sessions map[string][]model.HistoryEntry
}

// NewMemoryHistoryRepository 新しいMemoryHistoryRepositoryインスタンスを作成
func NewMemoryHistoryRepository() repository.HistoryRepository {
	return &MemoryHistoryRepository{
		sessions: make(map[string][]model.HistoryEntry),
	}
}

// Append は問い合わせ履歴を1件追記する（上限を超えた古い履歴は削除）
func (r *MemoryHistoryRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append([]model.HistoryEntry{*entry}, r.sessions[entry.SessionID]...)
	if len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}
	r.sessions[entry.SessionID] = entries

	return nil
}

// GetBySessionID はセッションの履歴を新しい順に取得する
func (r *MemoryHistoryRepository) GetBySessionID(ctx context.Context, sessionID string, limit int) ([]model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.sessions[sessionID]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	result := make([]model.HistoryEntry, len(entries))
	copy(result, entries)
	return result, nil
}
