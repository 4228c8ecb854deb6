package cmd

import (
	"fmt"
	"os"

	"github.com/sassmilic/ankigen-bcs/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は addAppFlags で各フラグに紐付けられる実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.WordsFile, "words", "w", config.DefaultWordsFile, "処理する語彙リストファイルのパスなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "インポートファイルの保存先ディレクトリなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.HistoryFile, "history-file", config.DefaultHistoryFile, "処理済み語の履歴ログのパスなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.MediaDir, "media-dir", config.DefaultMediaDir, "画像の保存先ディレクトリなのだ（ANKI_COLLECTION_MEDIA_PATH が優先されるのだ）。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- バッチ処理固有設定 ---
	rootCmd.PersistentFlags().IntVarP(&opts.BatchSize, "batch-size", "b", config.DefaultBatchSize, "1回の補完リクエストにまとめる語数なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.SimpleNouns, "simple-nouns", false, "定義と例文を省き、写真ベースのカードだけを作る短絡モードなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ankigen-bcs",
		addAppFlags,
		preRunAppE,
		generateCmd,
	)
}
