package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ToiletGenie-App/internal/domain/genie"
	"ToiletGenie-App/internal/domain/model"
	"ToiletGenie-App/internal/domain/repository"
)

type GenieUseCase interface {
	// Query はテキストクエリを解釈してジーニーの応答を生成する
	Query(ctx context.Context, req *model.GenieQueryRequest) (*model.GenieQueryResponse, error)

	// GetHistory はセッションの問い合わせ履歴を新しい順に取得する
	GetHistory(ctx context.Context, sessionID string) (*model.GetHistoryResponse, error)
}

// genieUseCaseImpl はGenieUseCaseの実装
// セッション状態（説明キャッシュ）はプロセス内に保持し、履歴だけを永続化する
type genieUseCaseImpl struct {
	toiletsRepo repository.ToiletsRepository
	historyRepo repository.HistoryRepository

	mu       sync.Mutex
	sessions map[string]*genie.Session
}

// NewGenieUseCase は新しいGenieUseCaseインスタンスを作成
func NewGenieUseCase(
	toiletsRepo repository.ToiletsRepository,
	historyRepo repository.HistoryRepository,
) GenieUseCase {
	return &genieUseCaseImpl{
		toiletsRepo: toiletsRepo,
		historyRepo: historyRepo,
		sessions:    make(map[string]*genie.Session),
	}
}

// Query はテキストクエリを解釈してジーニーの応答を生成する
func (u *genieUseCaseImpl) Query(ctx context.Context, req *model.GenieQueryRequest) (*model.GenieQueryResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	session := u.getOrCreateSession(sessionID)

	toilets, err := u.toiletsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("トイレ一覧の取得に失敗: %w", err)
	}

	log.Printf("🧞 ジーニー問い合わせ (セッション: %s, クエリ: %q)", sessionID, req.Text)

	engine := genie.NewEngine(toilets, req.Location, session)
	resp := engine.HandleQuery(req.Text)

	// 履歴の保存失敗で応答を壊さない（ベストエフォート）
	entry := &model.HistoryEntry{
		SessionID: sessionID,
		Query:     req.Text,
		Intent:    resp.Intent,
		AskedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		log.Printf("⚠️ 履歴の保存に失敗 (セッション: %s): %v", sessionID, err)
	}

	return &model.GenieQueryResponse{
		SessionID: sessionID,
		Message:   resp.Message,
		Results:   resp.Results,
		Intent:    resp.Intent,
	}, nil
}

// GetHistory はセッションの問い合わせ履歴を新しい順に取得する
func (u *genieUseCaseImpl) GetHistory(ctx context.Context, sessionID string) (*model.GetHistoryResponse, error) {
	entries, err := u.historyRepo.GetBySessionID(ctx, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("履歴の取得に失敗: %w", err)
	}

	return &model.GetHistoryResponse{Entries: entries}, nil
}

// getOrCreateSession はセッションを取得し、未知のIDなら新規作成する
func (u *genieUseCaseImpl) getOrCreateSession(sessionID string) *genie.Session {
	u.mu.Lock()
	defer u.mu.Unlock()

	if session, ok := u.sessions[sessionID]; ok {
		return session
	}

	session := genie.NewSession()
	u.sessions[sessionID] = session
	return session
}
