package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"

	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
)

// historyLimit セッションごとに保持する問い合わせ履歴の上限
const historyLimit = 10

// FirestoreHistoryRepository Firestoreを使用した問い合わせ履歴リポジトリ
// セッションIDごとに1ドキュメントを持ち、直近historyLimit件の履歴を新しい順で保持する
type FirestoreHistoryRepository struct {
	client *firestore.Client
}

// NewFirestoreHistoryRepository 新しいFirestoreHistoryRepositoryインスタンスを作成
func NewFirestoreHistoryRepository(client *firestore.Client) repository.HistoryRepository {
	return &FirestoreHistoryRepository{
		client: client,
	}
}

// firestoreHistoryDoc 履歴ドキュメントのFirestore表現
type firestoreHistoryDoc struct {
	Entries []model.HistoryEntry `firestore:"entries"`
}

// Append は問い合わせ履歴を1件追記する
// 履歴は新しい順に並び、historyLimitを超えた古い履歴は切り捨てられる
func (r *FirestoreHistoryRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	docRef := r.client.Collection("genieSessions").Doc(entry.SessionID)

	var doc firestoreHistoryDoc
	snapshot, err := docRef.Get(ctx)
	if err == nil {
		if err := snapshot.DataTo(&doc); err != nil {
			return fmt.Errorf("履歴データの変換に失敗しました: %w", err)
		}
	} else if !isNotFound(err) {
		return fmt.Errorf("履歴の取得に失敗しました: %w", err)
	}

	doc.Entries = append([]model.HistoryEntry{*entry}, doc.Entries...)
	if len(doc.Entries) > historyLimit {
		doc.Entries = doc.Entries[:historyLimit]
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		log.Printf("❌ Failed to save genie history for session %s: %v", entry.SessionID, err)
		return fmt.Errorf("履歴の保存に失敗しました: %w", err)
	}

	return nil
}

// GetBySessionID はセッションの問い合わせ履歴を新しい順に取得する
func (r *FirestoreHistoryRepository) GetBySessionID(ctx context.Context, sessionID string, limit int) ([]model.HistoryEntry, error) {
	snapshot, err := r.client.Collection("genieSessions").Doc(sessionID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return []model.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("履歴の取得に失敗しました: %w", err)
	}

	var doc firestoreHistoryDoc
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("履歴データの変換に失敗しました: %w", err)
	}

	if limit > 0 && len(doc.Entries) > limit {
		doc.Entries = doc.Entries[:limit]
	}

	return doc.Entries, nil
}

// isNotFound Firestoreのドキュメント未存在エラーかどうか
func isNotFound(err error) bool {
	status := err.Error()
	return strings.Contains(status, "NotFound") || strings.Contains(status, "not found")
}
