package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ToiletGenie-App/internal/application"
	domainrepo "ToiletGenie-App/internal/domain/repository"
	"ToiletGenie-App/internal/handler"
	"ToiletGenie-App/internal/infrastructure/database"
	fsinfra "ToiletGenie-App/internal/infrastructure/firestore"
	"ToiletGenie-App/internal/infrastructure/storage"
	"ToiletGenie-App/internal/repository"
	"ToiletGenie-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: SUPABASE_URL, SUPABASE_ANON_KEY")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}

	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ Supabase connection successful!")

	// トイレリポジトリの選択
	// DB直接接続が使える場合はPostGISの効率的な地理検索を使う
	toiletsRepo := buildToiletsRepository(supabaseClient)
	reviewsRepo := repository.NewSupabaseReviewsRepository(supabaseClient)
	profilesRepo := repository.NewSupabaseProfilesRepository(supabaseClient)
	historyRepo := buildHistoryRepository()
	imageStorage := storage.NewSupabaseImageStorage(supabaseClient)

	toiletsService := application.NewToiletsService(toiletsRepo, reviewsRepo, profilesRepo)
	profilesService := application.NewProfilesService(profilesRepo, reviewsRepo)
	genieUseCase := usecase.NewGenieUseCase(toiletsRepo, historyRepo)

	genieHandler := handler.NewGenieHandler(genieUseCase)
	toiletsHandler := handler.NewToiletsHandler(toiletsService)
	profilesHandler := handler.NewProfilesHandler(profilesService)
	imagesHandler := handler.NewImagesHandler(imageStorage)

	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ToiletGenie-App"})
	})

	router.POST("/genie/query", genieHandler.Query)
	router.GET("/genie/history/:sessionId", genieHandler.GetHistory)

	router.GET("/toilets", toiletsHandler.GetToilets)
	router.POST("/toilets", toiletsHandler.CreateToilet)
	router.GET("/toilets/:id", toiletsHandler.GetToiletDetail)
	router.PATCH("/toilets/:id/status", toiletsHandler.UpdateToiletStatus)
	router.GET("/toilets/:id/reviews", toiletsHandler.GetReviews)
	router.POST("/toilets/:id/reviews", toiletsHandler.AddReview)

	router.GET("/profiles/:id", profilesHandler.GetProfile)
	router.PUT("/profiles/:id", profilesHandler.SaveProfile)
	router.GET("/profiles/:id/stats", profilesHandler.GetUserStats)
	router.POST("/profiles/:id/favorites/:toiletId", profilesHandler.ToggleFavorite)

	router.POST("/images", imagesHandler.UploadImage)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("ToiletGenie-App server starting on :%s...\n", port)
	log.Fatal(router.Run(":" + port))
}

// buildToiletsRepository DB直接接続が設定されていればPostGIS版を、なければanonキー版を返す
func buildToiletsRepository(supabaseClient *database.SupabaseClient) domainrepo.ToiletsRepository {
	if os.Getenv("SUPABASE_DB_PASSWORD") == "" {
		log.Printf("ℹ️ SUPABASE_DB_PASSWORD未設定のためanonキー経由でトイレデータにアクセスします")
		return repository.NewSupabaseToiletsRepository(supabaseClient)
	}

	postgresClient, err := database.NewPostgreSQLClientWithRetry(3, 2*time.Second)
	if err != nil {
		log.Printf("⚠️ PostgreSQL接続に失敗、anonキー経由にフォールバック: %v", err)
		return repository.NewSupabaseToiletsRepository(supabaseClient)
	}

	log.Printf("✅ PostgreSQL直接接続を使用します (PostGIS地理検索有効)")
	return repository.NewPostgresToiletsRepository(postgresClient)
}

// buildHistoryRepository Firestoreが使えればFirestore版を、なければメモリ版を返す
func buildHistoryRepository() domainrepo.HistoryRepository {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("FIRESTORE_PROJECT_ID")
	}
	if projectID == "" {
		log.Printf("ℹ️ Firestoreプロジェクト未設定のため履歴はメモリ保持になります")
		return repository.NewMemoryHistoryRepository()
	}

	client, err := fsinfra.NewFirestoreClient(context.Background(), projectID)
	if err != nil {
		log.Printf("⚠️ Firestore初期化に失敗、履歴はメモリ保持にフォールバック: %v", err)
		return repository.NewMemoryHistoryRepository()
	}

	return repository.NewFirestoreHistoryRepository(client.GetClient())
}
