package test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/infrastructure/database"
	repoimpl "ToiletGenie-App/internal/repository"
)

// setupTestEnvironment .envを読み込む（リポジトリルート直下を想定）
func setupTestEnvironment() error {
	// テスト実行ディレクトリからの相対パス
	_ = godotenv.Load("../.env")

	if os.Getenv("SUPABASE_URL") == "" || os.Getenv("SUPABASE_ANON_KEY") == "" {
		return fmt.Errorf("SUPABASE_URLとSUPABASE_ANON_KEYが必要です")
	}
	return nil
}

// requireSupabase Supabase接続設定がない環境ではテストをスキップする
func requireSupabase(t *testing.T) *database.SupabaseClient {
	t.Helper()

	if err := setupTestEnvironment(); err != nil {
		t.Skipf("Supabase環境変数が未設定のためスキップ: %v", err)
	}

	client, err := database.NewSupabaseClient()
	if err != nil {
		t.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}
	return client
}

// setupToiletsRepository 統一されたトイレリポジトリのセットアップを行う
// DB直接接続が使える場合はPostGIS版を返す
func setupToiletsRepository(t *testing.T) (repository.ToiletsRepository, func()) {
	t.Helper()

	client := requireSupabase(t)

	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		postgresClient, err := database.NewPostgreSQLClientWithRetry(5, 1*time.Second)
		if err == nil {
			cleanup := func() { postgresClient.Close() }
			return repoimpl.NewPostgresToiletsRepository(postgresClient), cleanup
		}
		t.Logf("⚠️ PostgreSQL接続に失敗、anonキー経由で続行: %v", err)
	}

	return repoimpl.NewSupabaseToiletsRepository(client), func() {}
}
