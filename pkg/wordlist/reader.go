// Package wordlist は入力となる語彙リストの読み込みを担当します。
// 1行1語のプレーンテキストで、空行と '#' 始まりのコメント行は除外します。
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const commentPrefix = "#"

// Read はファイルから語彙トークンを入力順のまま読み込みます。
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("語彙リストの読み込みに失敗しました: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("語彙リストの走査に失敗しました: %w", err)
	}
	return words, nil
}
