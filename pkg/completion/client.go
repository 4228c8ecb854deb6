// Package completion はテキスト補完サービスへの境界を提供します。
// レート制限の再試行はこの層で吸収し、上位には成功テキストか
// 失敗シグナルだけを返します。
package completion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
)

// generateFunc はモデル呼び出し1回分の抽象です。テストではここを差し替えます。
type generateFunc func(ctx context.Context, prompt string) (string, error)

// sleepFunc は再試行待ちの抽象です。コンテキスト取消で中断できます。
type sleepFunc func(ctx context.Context, d time.Duration) error

// Client はレート制限の再試行を内蔵した補完クライアントです。
// 再試行は固定ディレイ・上限付き（低スループットのバッチジョブ向けの方針）。
type Client struct {
	generate    generateFunc
	retryDelay  time.Duration
	maxAttempts int
	sleep       sleepFunc
}

// NewClient は Gemini クライアントを包んだ補完クライアントを生成します。
func NewClient(ai gemini.GenerativeModel, model string, retryDelay time.Duration, maxAttempts int) *Client {
	return &Client{
		generate: func(ctx context.Context, prompt string) (string, error) {
			resp, err := ai.GenerateContent(ctx, prompt, model)
			if err != nil {
				return "", err
			}
			return resp.Text, nil
		},
		retryDelay:  retryDelay,
		maxAttempts: maxAttempts,
		sleep:       contextSleep,
	}
}

// Complete はプロンプトを送り、応答テキストを返します。
// レート制限シグナルは retryDelay を挟んで maxAttempts 回まで再試行し、
// それ以外の失敗は即座に返します。
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := c.generate(ctx, prompt)
		if err == nil {
			if text == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}

		if !IsRateLimit(err) {
			return "", fmt.Errorf("補完リクエストに失敗しました: %w", err)
		}

		lastErr = err
		slog.Warn("レート制限を検出。待機して再試行するのだ",
			"attempt", attempt, "max_attempts", attempts, "delay", c.retryDelay)

		if attempt == attempts {
			break
		}
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %v", ErrRateLimited, lastErr)
}

// contextSleep は d 経過か ctx の取消のどちらか早い方まで待ちます。
func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
