// Package history は処理済み語の追記専用ログを扱います。
// 1行1エントリのJSONで、正規形をキーに重複処理を防ぎます。
// 書き込みは単一プロセス前提です。同じログに対して複数の実行を
// 並走させた場合の動作は未定義です。
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Entry は1語分の処理完了記録です。画像の添付まで成功した語だけが
// 記録され、以後の実行ではその語は丸ごとスキップされます。
type Entry struct {
	CanonicalForm string `json:"canonical_form"`
	Translation   string `json:"translation"`
	ImagePath     string `json:"image_path"`
	Created       bool   `json:"created"`
}

// Store は追記専用ログファイルへのアクセスを提供します。
type Store struct {
	path string
}

// NewStore は指定パスのログを扱う Store を返します。ファイルは
// 最初の Append 時に作成されます。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load はログ全体を読み、正規形をキーとするマップを返します。
// ファイルが存在しない場合は空のマップを返します（初回実行）。
// 旧リビジョンが書いたフィールド過不足のある行も許容します。
// 解釈できない行は読み飛ばさず、エラーとして実行を止めます。
// 黙って進めると二重処理や二重追記の危険があるためです。
func (s *Store) Load() (map[string]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Entry{}, nil
		}
		return nil, fmt.Errorf("履歴ファイルを開けません: %w", err)
	}
	defer f.Close()

	entries := make(map[string]Entry)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("履歴ファイルの %d 行目が解釈できません: %w", line, err)
		}
		if e.CanonicalForm == "" {
			return nil, fmt.Errorf("履歴ファイルの %d 行目に canonical_form がありません", line)
		}
		entries[e.CanonicalForm] = e
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("履歴ファイルの走査に失敗しました: %w", err)
	}
	return entries, nil
}

// Append はエントリを1行追記します。一意性の再確認はしません。
// 呼び出し側が Load のスナップショットで事前にフィルタする前提です。
func (s *Store) Append(entry Entry) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("履歴ファイルを追記モードで開けません: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("履歴エントリのエンコードに失敗しました: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("履歴エントリの書き込みに失敗しました: %w", err)
	}
	return nil
}
