package builder

import (
	"github.com/sassmilic/ankigen-bcs/internal/config"
	"github.com/sassmilic/ankigen-bcs/pkg/prompts"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する。
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です。
	Prompts    *prompts.Builder        // Promptsは、補完・画像生成プロンプトのビルダーです。
	aiClient   gemini.GenerativeModel  // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // httpClient は画像取得などの外部通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	pb *prompts.Builder,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Prompts:    pb,
		aiClient:   aiClient,
		httpClient: httpClient,
	}
}
