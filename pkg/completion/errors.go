package completion

import (
	"errors"
	"strings"
)

var (
	// ErrRateLimited はレート制限で再試行回数を使い切ったことを表します。
	ErrRateLimited = errors.New("completion: rate limited")

	// ErrMalformedResponse は応答がJSON配列として解釈できないことを表します。
	// 呼び出し側（バッチマージャー）はこのエラーでバッチ全体を中断します。
	ErrMalformedResponse = errors.New("completion: malformed response")

	// ErrEmptyResponse はモデルが空のテキストを返したことを表します。
	ErrEmptyResponse = errors.New("completion: empty response")
)

// rateLimitMarkers はレート制限を示す応答文字列の断片です。
// Gemini 系のAPIは 429 / RESOURCE_EXHAUSTED をこの形で返します。
var rateLimitMarkers = []string{
	"429",
	"resource_exhausted",
	"rate limit",
	"quota",
}

// IsRateLimit はエラーがレート制限由来かどうかを判定します。
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
