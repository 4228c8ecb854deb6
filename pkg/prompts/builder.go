// Package prompts は補完サービスと画像生成サービスに渡すプロンプトを構築します。
// テンプレートは go:embed で同梱し、内容の差し替えはテンプレートファイル側で行います。
// 本文に Anki の cloze 記法 `{{c1::…}}` を含むため、テンプレートの
// デリミタは `<<` `>>` に変更しています。
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed structural.md
var structuralTemplate string

//go:embed semantic.md
var semanticTemplate string

//go:embed stylistic.md
var stylisticTemplate string

//go:embed illustration.md
var illustrationTemplate string

// batchData はバッチ系プロンプトに埋め込む値です。
type batchData struct {
	WordList string
}

// IllustrationData は画像生成プロンプトに埋め込む値です。
type IllustrationData struct {
	Word         string
	Gloss        string
	PartOfSpeech string
}

// Builder はパース済みテンプレートを保持するプロンプトビルダーです。
type Builder struct {
	structural   *template.Template
	semantic     *template.Template
	stylistic    *template.Template
	illustration *template.Template
}

// NewBuilder は同梱テンプレートをすべてパースして Builder を返します。
func NewBuilder() (*Builder, error) {
	parse := func(name, text string) (*template.Template, error) {
		tmpl, err := template.New(name).Delims("<<", ">>").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' のパースに失敗しました: %w", name, err)
		}
		return tmpl, nil
	}

	structural, err := parse("structural", structuralTemplate)
	if err != nil {
		return nil, err
	}
	semantic, err := parse("semantic", semanticTemplate)
	if err != nil {
		return nil, err
	}
	stylistic, err := parse("stylistic", stylisticTemplate)
	if err != nil {
		return nil, err
	}
	illustration, err := parse("illustration", illustrationTemplate)
	if err != nil {
		return nil, err
	}

	return &Builder{
		structural:   structural,
		semantic:     semantic,
		stylistic:    stylistic,
		illustration: illustration,
	}, nil
}

// Structural は構造・事実系（正規形、品詞、語タイプ、訳語）のバッチプロンプトを返します。
func (b *Builder) Structural(words []string) (string, error) {
	return b.renderBatch(b.structural, words)
}

// Semantic は定義生成のバッチプロンプトを返します。
func (b *Builder) Semantic(words []string) (string, error) {
	return b.renderBatch(b.semantic, words)
}

// Stylistic は例文生成のバッチプロンプトを返します。
func (b *Builder) Stylistic(words []string) (string, error) {
	return b.renderBatch(b.stylistic, words)
}

// Illustration は1語分の画像生成プロンプトを返します。
func (b *Builder) Illustration(data IllustrationData) (string, error) {
	var sb strings.Builder
	if err := b.illustration.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("画像プロンプトの構築に失敗しました: %w", err)
	}
	return sb.String(), nil
}

func (b *Builder) renderBatch(tmpl *template.Template, words []string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, batchData{WordList: QuoteWordList(words)}); err != nil {
		return "", fmt.Errorf("バッチプロンプトの構築に失敗しました: %w", err)
	}
	return sb.String(), nil
}

// QuoteWordList はトークンを引用符で括り、カンマ区切りで連結します。
// 誤記を含むトークンもそのまま渡します。応答側の結合キーになるためです。
func QuoteWordList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}
