package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sassmilic/ankigen-bcs/pkg/domain"
)

// Processor は1バッチ分のマージ処理の抽象です。*Merger が満たします。
type Processor interface {
	Merge(ctx context.Context, words []string) ([]domain.WordRecord, error)
}

// Scheduler は語彙リストを固定サイズのバッチに分割して順番に処理します。
// バッチ間には外部サービスのレート制限を考慮した固定ディレイを挟みます。
// バッチは厳密に逐次処理です。スループットよりも決定的で追いやすい
// 実行順を優先しています。
type Scheduler struct {
	processor Processor
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewScheduler は Scheduler を生成します。
func NewScheduler(processor Processor, delay time.Duration) *Scheduler {
	return &Scheduler{
		processor: processor,
		delay:     delay,
		sleep:     sleepContext,
	}
}

// Process は words を batchSize ごとのチャンクに分割し、チャンク単位で
// マージ処理を呼び出して結果を入力順に連結します。失敗はバッチ単位で
// 隔離され、後続のバッチは続行します。ディレイは最後のチャンクの後には
// 入りません。
func (s *Scheduler) Process(ctx context.Context, words []string, batchSize int) ([]domain.WordRecord, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("バッチサイズは正の整数である必要があります: %d", batchSize)
	}

	total := len(words)
	batchCount := (total + batchSize - 1) / batchSize

	var results []domain.WordRecord
	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}
		chunk := words[i:end]

		slog.Info("バッチを処理するのだ",
			"batch", i/batchSize+1, "batches", batchCount, "words", len(chunk))

		records, err := s.processor.Merge(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			slog.Error("バッチの処理に失敗したのだ。このバッチはスキップするのだ",
				"batch", i/batchSize+1, "error", err)
		}
		results = append(results, records...)

		if end < total {
			slog.Info("次のバッチまで待機するのだ", "delay", s.delay)
			if err := s.sleep(ctx, s.delay); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

// sleepContext は d 経過か ctx の取消のどちらか早い方まで待ちます。
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
