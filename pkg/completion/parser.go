package completion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseArray は補完応答をJSON配列（1要素=1語のオブジェクト）として解釈します。
// プロンプトは生のJSON配列を要求していますが、モデルが付けがちな
// Markdownフェンス (```json ... ```) は除去してから解釈します。
// 配列でない・JSONでない応答は ErrMalformedResponse になります。
func ParseArray(raw string) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if trimmed == "" {
		return nil, fmt.Errorf("%w: 応答が空です", ErrMalformedResponse)
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return items, nil
}
