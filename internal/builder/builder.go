package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/sassmilic/ankigen-bcs/internal/config"
	"github.com/sassmilic/ankigen-bcs/pkg/anki"
	"github.com/sassmilic/ankigen-bcs/pkg/batch"
	"github.com/sassmilic/ankigen-bcs/pkg/completion"
	"github.com/sassmilic/ankigen-bcs/pkg/history"
	"github.com/sassmilic/ankigen-bcs/pkg/images"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(config.DefaultTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildScheduler は補完クライアント・マージャー・スケジューラを
// 組み立てて返します。
func BuildScheduler(appCtx *AppContext) *batch.Scheduler {
	client := completion.NewClient(
		appCtx.aiClient,
		appCtx.Config.GeminiModel,
		config.DefaultRetryDelay,
		config.DefaultMaxRetries,
	)
	merger := batch.NewMerger(client, appCtx.Prompts, appCtx.Options.SimpleNouns)
	return batch.NewScheduler(merger, config.DefaultInterBatchDelay)
}

// BuildImageAcquirer は写真検索と画像生成の両経路を持つ Acquirer を構築します。
// 生成経路のレートリミッターはここで1つだけ作られ、Acquirer が保持します。
func BuildImageAcquirer(appCtx *AppContext) (*images.Acquirer, error) {
	imgGen, err := initializeImageGenerator(appCtx)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	pexels := images.NewPexelsClient(appCtx.Config.PexelsAPIKey, appCtx.Options.HTTPTimeout)

	limiter := rate.NewLimiter(
		rate.Every(config.DefaultImageRatePeriod/config.DefaultImageRateLimit), 1)

	return images.NewAcquirer(
		pexels,
		imgGen,
		appCtx.Prompts,
		limiter,
		appCtx.Config.MediaDir(),
		appCtx.Options.SimpleNouns,
	), nil
}

// BuildHistoryStore は履歴ストアを構築します。
func BuildHistoryStore(appCtx *AppContext) *history.Store {
	return history.NewStore(appCtx.Options.HistoryFile)
}

// BuildImportWriter はAnkiインポートファイルのライターを構築します。
func BuildImportWriter(appCtx *AppContext) *anki.Writer {
	return anki.NewWriter(
		appCtx.Options.OutputDir,
		config.CSVSeparator,
		config.CSVHTMLEnabled,
		config.CSVNotetypeColumn,
	)
}

// initializeImageGenerator は ImageGeneratorを初期化します。
func initializeImageGenerator(appCtx *AppContext) (imagekit.ImageGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	// 画像処理コアを生成
	core, err := imagekit.NewGeminiImageCore(
		appCtx.httpClient,
		imgCache,
		cacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(
		core,
		appCtx.aiClient,
		appCtx.Config.GeminiImageModel,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return imgGen, nil
}
