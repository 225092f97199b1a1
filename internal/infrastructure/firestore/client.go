package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreClient ジーニー履歴の保存先となるFirestore接続のラッパー
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient 実行環境に応じた認証方法でFirestoreクライアントを作成する
// Cloud Runではデフォルト認証、ローカルではサービスアカウントの鍵ファイルを使う
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	if os.Getenv("K_SERVICE") != "" || os.Getenv("PORT") != "" {
		log.Printf("☁️ Cloud Run環境を検出、デフォルト認証でFirestoreに接続します")
		client, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("firestoreクライアントの作成に失敗しました: %w", err)
		}
		log.Printf("✅ Firestore接続完了 (プロジェクト: %s)", projectID)
		return &FirestoreClient{client: client}, nil
	}

	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		credentialsFile = "toiletgenie-firestore-key.json"
	}

	var client *firestore.Client
	var err error
	if _, fileErr := os.Stat(credentialsFile); fileErr != nil {
		log.Printf("⚠️ 鍵ファイルが見つかりません (%s)、デフォルト認証を試します", credentialsFile)
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		log.Printf("📄 鍵ファイルを使用: %s", credentialsFile)
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	}
	if err != nil {
		return nil, fmt.Errorf("firestoreクライアントの作成に失敗しました: %w", err)
	}

	log.Printf("✅ Firestore接続完了 (プロジェクト: %s)", projectID)
	return &FirestoreClient{client: client}, nil
}

// Close 接続を閉じる
func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

// GetClient 内部のfirestore.Clientを取得する
func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
