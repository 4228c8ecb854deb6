// Package pipeline はフラッシュカード生成の工程全体を束ねるのだ。
// 語彙リストの読み込みからインポートファイルの書き出しまでを、
// 1本の逐次の制御フローとして実行するのだよ。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sassmilic/ankigen-bcs/internal/builder"
	"github.com/sassmilic/ankigen-bcs/internal/config"
	"github.com/sassmilic/ankigen-bcs/pkg/anki"
	"github.com/sassmilic/ankigen-bcs/pkg/history"
	"github.com/sassmilic/ankigen-bcs/pkg/prompts"
	"github.com/sassmilic/ankigen-bcs/pkg/wordlist"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// runStats は実行サマリー用のカウンタなのだ。特定の語の失敗を
// 再実行なしで追えるだけの内訳をログに残すのだ。
type runStats struct {
	attempted      int // 入力リストの語数
	merged         int // バッチ処理で受理された語数
	skippedHistory int // 履歴済みでスキップ
	skippedDup     int // 同一実行内の重複でスキップ
	skippedImage   int // 画像取得失敗でスキップ
	accepted       int // 画像まで揃って履歴に追記された語数
	cardsWritten   int
}

// Execute は、フラッシュカード生成パイプラインを最初から最後まで実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	// --- Phase 1: 語彙リストの読み込みなのだ ---
	words, err := wordlist.Read(cfg.Options.WordsFile)
	if err != nil {
		return err
	}
	stats := runStats{attempted: len(words)}
	slog.Info("語彙リストを読み込んだのだ",
		"words", len(words), "batch_size", cfg.Options.BatchSize,
		"simple_nouns", cfg.Options.SimpleNouns)

	// --- Phase 2: 履歴の読み込みなのだ（読めなければ致命的） ---
	historyStore := builder.BuildHistoryStore(appCtx)
	processed, err := historyStore.Load()
	if err != nil {
		return fmt.Errorf("履歴が使えないため実行を中止するのだ: %w", err)
	}
	slog.Info("履歴を読み込んだのだ", "entries", len(processed))

	// --- Phase 3: バッチ処理（3系統の補完リクエストとマージ）なのだ ---
	scheduler := builder.BuildScheduler(appCtx)
	records, err := scheduler.Process(ctx, words, cfg.Options.BatchSize)
	if err != nil {
		return fmt.Errorf("バッチ処理が中断されたのだ: %w", err)
	}
	stats.merged = len(records)

	// --- Phase 4: 画像の取得とカードの組み立てなのだ ---
	acquirer, err := builder.BuildImageAcquirer(appCtx)
	if err != nil {
		return err
	}

	var cards []anki.Card
	seen := make(map[string]struct{})
	for _, rec := range records {
		if _, done := processed[rec.CanonicalForm]; done {
			slog.Info("履歴済みのためスキップするのだ", "word", rec.CanonicalForm)
			stats.skippedHistory++
			continue
		}
		if _, dup := seen[rec.CanonicalForm]; dup {
			slog.Info("同一実行内で処理済みのためスキップするのだ", "word", rec.CanonicalForm)
			stats.skippedDup++
			continue
		}
		seen[rec.CanonicalForm] = struct{}{}

		// 画像は1語ずつ逐次取得するのだ。失敗した語は履歴に載せず、
		// 次回の実行で再試行させるのだ
		imagePath, err := acquirer.Acquire(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("画像を取得できなかったのだ。この語は今回の出力から外すのだ",
				"word", rec.CanonicalForm, "error", err)
			stats.skippedImage++
			continue
		}
		rec.ImagePath = imagePath

		cards = append(cards, anki.AssembleCards(rec, filepath.Base(imagePath), cfg.Options.SimpleNouns)...)

		// 画像の添付まで成功した語だけを、その場で履歴に追記するのだ
		entry := history.Entry{
			CanonicalForm: rec.CanonicalForm,
			Translation:   rec.Translation,
			ImagePath:     filepath.Base(imagePath),
			Created:       true,
		}
		if err := historyStore.Append(entry); err != nil {
			return fmt.Errorf("履歴に追記できないため実行を中止するのだ: %w", err)
		}
		stats.accepted++
	}

	// --- Phase 5: インポートファイルの書き出しなのだ ---
	if len(cards) == 0 {
		slog.Info("新しく処理できた語がないのだ。インポートファイルは書き出さないのだ")
		logSummary(stats)
		return nil
	}

	writer := builder.BuildImportWriter(appCtx)
	outputPath, err := writer.Write(cards)
	if err != nil {
		return err
	}
	stats.cardsWritten = len(cards)

	slog.Info("インポートファイルが完成したのだ！", "path", outputPath)
	logSummary(stats)
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、
// アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	pb, err := prompts.NewBuilder()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, pb)
	return &appCtx, nil
}

// ensureDirectories は出力・画像・履歴の各ディレクトリを用意するのだ。
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Options.OutputDir,
		cfg.MediaDir(),
		filepath.Dir(cfg.Options.HistoryFile),
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ディレクトリ '%s' の作成に失敗したのだ: %w", dir, err)
		}
	}
	return nil
}

// logSummary は実行の内訳を1行で報告するのだ。
func logSummary(stats runStats) {
	slog.Info("実行サマリーなのだ",
		"attempted", stats.attempted,
		"merged", stats.merged,
		"skipped_history", stats.skippedHistory,
		"skipped_duplicate", stats.skippedDup,
		"skipped_image", stats.skippedImage,
		"accepted", stats.accepted,
		"cards_written", stats.cardsWritten,
	)
}
