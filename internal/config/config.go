package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultTemperature = float32(0.4)
	DefaultHTTPTimeout = 30 * time.Second

	// バッチ処理・再試行のパラメータなのだ
	DefaultBatchSize       = 10
	DefaultInterBatchDelay = 3 * time.Second
	DefaultRetryDelay      = 30 * time.Second
	DefaultMaxRetries      = 10

	// 画像生成のレート制限（期間あたりの生成枚数）なのだ
	DefaultImageRateLimit  = 20
	DefaultImageRatePeriod = time.Minute

	// 入出力のデフォルトパスなのだ
	DefaultWordsFile   = "words.txt"
	DefaultOutputDir   = "output"
	DefaultHistoryFile = "output/flashcard_history.jsonl"
	DefaultMediaDir    = "output/media"

	// Ankiインポート形式の設定なのだ
	CSVSeparator      = '\t'
	CSVHTMLEnabled    = true
	CSVNotetypeColumn = "1"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	PexelsAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	// AnkiMediaDir は Anki の collection.media への保存先。未設定なら
	// Options.MediaDir が使われるのだ。
	AnkiMediaDir string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		PexelsAPIKey:     envutil.GetEnv("PEXELS_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		AnkiMediaDir:     envutil.GetEnv("ANKI_COLLECTION_MEDIA_PATH", ""),
	}
}

// MediaDir は画像の保存先を解決するのだ。環境変数で Anki の
// collection.media が指定されていればそちらを優先するのだ。
func (c *Config) MediaDir() string {
	if c.AnkiMediaDir != "" {
		return c.AnkiMediaDir
	}
	return c.Options.MediaDir
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入出力関連
	WordsFile   string // --words
	OutputDir   string // --output-dir
	HistoryFile string // --history-file
	MediaDir    string // --media-dir

	// バッチ処理関連
	BatchSize   int  // --batch-size
	SimpleNouns bool // --simple-nouns: 定義と例文の生成を省く短絡モード

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
