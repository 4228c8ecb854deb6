package anki

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	noteTypeBasic = "Basic"
	noteTypeCloze = "Cloze"
)

// Writer はインポートファイルの書き出しの実体です。
// 出力はヘッダ3行＋1カード1〜2行の区切り文字区切りテキストです。
// インポートツールは最初のデータ行から総カラム数を推定するため、
// basic行（3カラム）は必ずcloze行（2カラム）より先に出力します。
// cloze行が先に来るとカラム数が2で確定し、後続のbasic行の3カラム目が
// インポート時に黙って捨てられます。
type Writer struct {
	outputDir      string
	separator      rune
	htmlEnabled    bool
	notetypeColumn string
	now            func() time.Time
}

// NewWriter は Writer を生成します。
func NewWriter(outputDir string, separator rune, htmlEnabled bool, notetypeColumn string) *Writer {
	return &Writer{
		outputDir:      outputDir,
		separator:      separator,
		htmlEnabled:    htmlEnabled,
		notetypeColumn: notetypeColumn,
		now:            time.Now,
	}
}

// Write はカード群をタイムスタンプ付きのファイルに書き出し、パスを返します。
// basic カード1枚につき (表,裏) と (裏,表) の2行を出力して、画像→語と
// 語→画像の両方向の学習カードを作ります。
func (w *Writer) Write(cards []Card) (string, error) {
	timestamp := w.now().Format("20060102_150405")
	path := filepath.Join(w.outputDir, fmt.Sprintf("flashcards_%s.csv", timestamp))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("#separator:%c\n", w.separator))
	sb.WriteString(fmt.Sprintf("#html:%t\n", w.htmlEnabled))
	sb.WriteString(fmt.Sprintf("#notetype column:%s\n", w.notetypeColumn))

	// basic が先、cloze が後。それぞれの中では入力順を保つのだ
	for _, card := range cards {
		if card.Type != CardTypeBasic {
			continue
		}
		w.writeRow(&sb, noteTypeBasic, card.Front, card.Back)
		w.writeRow(&sb, noteTypeBasic, card.Back, card.Front)
	}
	for _, card := range cards {
		if card.Type != CardTypeCloze {
			continue
		}
		w.writeRow(&sb, noteTypeCloze, card.Text)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("インポートファイルの書き込みに失敗しました: %w", err)
	}

	slog.Info("インポートファイルを書き出したのだ", "cards", len(cards), "path", path)
	return path, nil
}

// writeRow は1行分のフィールドを区切り文字で連結して書き込みます。
// CSVの引用符エスケープは使いません。タブ区切りの素朴な分割で
// 読み戻せることをインポートツールが前提にしているためです。
// フィールド内の区切り文字と改行は空白に置き換えます。
func (w *Writer) writeRow(sb *strings.Builder, fields ...string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteRune(w.separator)
		}
		sb.WriteString(w.sanitize(field))
	}
	sb.WriteByte('\n')
}

func (w *Writer) sanitize(field string) string {
	replacer := strings.NewReplacer(
		string(w.separator), " ",
		"\n", " ",
		"\r", " ",
	)
	return replacer.Replace(field)
}
