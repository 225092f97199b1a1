package genie

import (
	"math/rand"
	"time"

	"ToiletGenie-App/internal/domain/model"
)

// Session は1つのチャットセッションが持つ状態を保持する
// 説明キャッシュは1枠のみで、新しいおすすめ計算のたびに上書きされる（追記はされない）
// 同一セッション内でクエリが並行実行されることはないため、ロックは不要
type Session struct {
	lastRecommendation *model.Recommendation
	rng                *rand.Rand
}

// NewSession は新しいセッションを作成する
func NewSession() *Session {
	return NewSessionWithSeed(time.Now().UnixNano())
}

// NewSessionWithSeed はシード指定でセッションを作成する
// 言い回しの選択を決定的にできるため、テストで使用する
func NewSessionWithSeed(seed int64) *Session {
	return &Session{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// LastRecommendation は直近のおすすめ結果を取得する（未計算ならnil）
func (s *Session) LastRecommendation() *model.Recommendation {
	return s.lastRecommendation
}

// RememberRecommendation はおすすめ結果をキャッシュに上書き保存する
func (s *Session) RememberRecommendation(rec *model.Recommendation) {
	s.lastRecommendation = rec
}
