// Package anki はマージ済みレコードからフラッシュカードを組み立て、
// Anki のインポート形式で書き出します。
package anki

import (
	"fmt"
	"strings"

	"github.com/sassmilic/ankigen-bcs/pkg/domain"
)

// CardType はカードの形です。basic は表裏の想起、cloze は穴埋めです。
type CardType string

const (
	CardTypeBasic CardType = "basic"
	CardTypeCloze CardType = "cloze"
)

// Card は書き出し直前の一時的なカード表現です。永続化はされません。
type Card struct {
	Type CardType
	Word string

	// basic 用
	Front string
	Back  string

	// cloze 用
	Text string
}

// AssembleCards は1語分のレコードからカード一式を作ります。
// 通常は定義cloze・例文cloze・画像basicの3枚、短絡モードでは
// 画像basicの1枚だけです。imageFile には保存画像のベース名を渡します。
// Ankiはメディアをフォルダ単位で管理するためパスは含めません。
func AssembleCards(rec domain.WordRecord, imageFile string, simpleNouns bool) []Card {
	word := rec.CanonicalForm
	imageTag := fmt.Sprintf(`<img src="%s">`, imageFile)

	if simpleNouns {
		return []Card{
			{Type: CardTypeBasic, Word: word, Front: word, Back: imageTag},
		}
	}

	var examples strings.Builder
	examples.WriteString("<ul>")
	for _, ex := range rec.ExampleSentences {
		examples.WriteString("<li>")
		examples.WriteString(ex)
		examples.WriteString("</li>")
	}
	examples.WriteString("</ul>")

	return []Card{
		{Type: CardTypeCloze, Word: word, Text: rec.Definition},
		{Type: CardTypeCloze, Word: word, Text: examples.String()},
		{Type: CardTypeBasic, Word: word, Front: word, Back: imageTag},
	}
}
