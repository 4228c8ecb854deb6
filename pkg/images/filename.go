package images

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var numberedImagePattern = regexp.MustCompile(`_image_(\d+)\.png$`)

// SearchImagePath は写真検索で取得する画像の保存先です。
// 1語につき固定の1ファイルで、再取得時は上書きになります。
func SearchImagePath(dir, word string) string {
	return filepath.Join(dir, word+"_image.png")
}

// NextGeneratedImagePath は生成画像の保存先を決めます。ディレクトリを走査して
// `<word>_image.png`（番号0扱い）と `<word>_image_N.png` の既存ファイルから
// 次の未使用番号を割り出します。生成画像は上書きせず蓄積する方針です。
func NextGeneratedImagePath(dir, word string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("画像ディレクトリの走査に失敗しました: %w", err)
	}

	base := word + "_image.png"
	baseExists := false
	maxNum := -1
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, word+"_image") {
			continue
		}
		if name == base {
			baseExists = true
			if maxNum < 0 {
				maxNum = 0
			}
			continue
		}
		if m := numberedImagePattern.FindStringSubmatch(name); m != nil {
			var n int
			fmt.Sscanf(m[1], "%d", &n)
			if n > maxNum {
				maxNum = n
			}
		}
	}

	next := maxNum + 1
	if next == 0 {
		next = 1
	}
	if next == 1 && !baseExists {
		return filepath.Join(dir, base), nil
	}
	return filepath.Join(dir, fmt.Sprintf("%s_image_%d.png", word, next)), nil
}
