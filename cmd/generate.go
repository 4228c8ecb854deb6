package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sassmilic/ankigen-bcs/internal/config"
	"github.com/sassmilic/ankigen-bcs/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、語彙リストからAnkiフラッシュカードを生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "語彙リストからAnkiのフラッシュカードを生成しますなのだ。",
	Long: `語彙リストの各語についてAIに語彙情報を生成させ、画像を添付して
Ankiにインポートできるファイルを書き出すのだ。
処理済みの語は履歴ログに記録され、次回以降の実行ではスキップされるのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 入力ファイルの存在チェック
	if _, err := os.Stat(opts.WordsFile); err != nil {
		return fmt.Errorf("語彙リスト '%s' が読めないのだ: %w", opts.WordsFile, err)
	}
	if opts.BatchSize <= 0 {
		return fmt.Errorf("--batch-size は正の値を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	// Pexels キーがなくても名詞以外は処理できるので、警告にとどめるのだ
	if cfg.PexelsAPIKey == "" {
		slog.Warn("PEXELS_API_KEY が未設定なのだ。写真検索は失敗し、対象の語はスキップされるのだ")
	}

	slog.Info("フラッシュカード生成パイプラインを起動するのだ！",
		"words_file", opts.WordsFile,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output_dir", opts.OutputDir)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	err := pipeline.Execute(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
