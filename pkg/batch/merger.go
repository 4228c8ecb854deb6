// Package batch は語彙リストのバッチ処理の中核です。
// 1バッチにつきカテゴリ別の補完リクエストを発行し、部分結果を
// 元トークンをキーに統合して、受理条件を満たすレコードだけを返します。
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sassmilic/ankigen-bcs/pkg/completion"
	"github.com/sassmilic/ankigen-bcs/pkg/domain"
)

// Completer は補完サービス境界の抽象です。pkg/completion.Client が満たします。
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptSource はカテゴリ別バッチプロンプトの供給元です。pkg/prompts.Builder が満たします。
type PromptSource interface {
	Structural(words []string) (string, error)
	Semantic(words []string) (string, error)
	Stylistic(words []string) (string, error)
}

// Merger は1バッチ分のマージ処理の実体です。
// 「すべてを1プロンプトで聞く」のではなくカテゴリを分けるのは、
// 満たしにくい指示（例文の生き生きさなど）が高価値フィールド
// （正規形・訳語）を巻き込んで壊すのを防ぐためです。
type Merger struct {
	completer   Completer
	prompts     PromptSource
	simpleNouns bool
}

// NewMerger は Merger を生成します。simpleNouns が真のとき、
// 定義・例文のリクエストを省略する短絡モードで動作します。
func NewMerger(completer Completer, prompts PromptSource, simpleNouns bool) *Merger {
	return &Merger{
		completer:   completer,
		prompts:     prompts,
		simpleNouns: simpleNouns,
	}
}

// Merge はバッチ内の全トークンについて3系統（短絡時は1系統）の
// リクエストを発行し、受理されたレコードを入力順で返します。
// いずれかのリクエストの応答が得られない場合はバッチ全体を中断し、
// 空の結果とエラーを返します。推測で埋めることはしません。
func (m *Merger) Merge(ctx context.Context, words []string) ([]domain.WordRecord, error) {
	if len(words) == 0 {
		return nil, nil
	}

	// 各トークンを結合キーとして部分レコードを種まきするのだ
	seeded := make(map[string]*domain.WordRecord, len(words))
	for _, w := range words {
		seeded[w] = &domain.WordRecord{OriginalToken: w}
	}

	slog.Info("構造データを要求するのだ", "words", len(words))
	if err := m.runStage(ctx, "structural", m.prompts.Structural, words, seeded); err != nil {
		return nil, fmt.Errorf("構造リクエストに失敗、バッチをスキップします: %w", err)
	}

	if m.simpleNouns {
		slog.Info("短絡モード: 定義と例文の生成をスキップするのだ", "words", len(words))
		for _, rec := range seeded {
			rec.Definition = ""
			rec.ExampleSentences = []string{}
		}
	} else {
		slog.Info("定義データを要求するのだ", "words", len(words))
		if err := m.runStage(ctx, "semantic", m.prompts.Semantic, words, seeded); err != nil {
			return nil, fmt.Errorf("定義リクエストに失敗、バッチをスキップします: %w", err)
		}

		slog.Info("例文データを要求するのだ", "words", len(words))
		if err := m.runStage(ctx, "stylistic", m.prompts.Stylistic, words, seeded); err != nil {
			return nil, fmt.Errorf("例文リクエストに失敗、バッチをスキップします: %w", err)
		}
	}

	// 受理判定。欠落のあるレコードは理由付きで落とし、既定値で埋めないのだ
	var accepted []domain.WordRecord
	for _, w := range words {
		rec := seeded[w]
		if missing := rec.MissingFields(m.simpleNouns); len(missing) > 0 {
			slog.Warn("必須フィールドが欠けているためスキップするのだ",
				"word", w, "missing", missing)
			continue
		}
		slog.Info("処理完了", "canonical_form", rec.CanonicalForm, "translation", rec.Translation)
		accepted = append(accepted, *rec)
	}

	if len(accepted) > 0 {
		slog.Info("バッチのマージが完了したのだ", "accepted", len(accepted), "total", len(words))
	} else {
		slog.Warn("バッチ内のどの語も完全には処理できなかったのだ", "first_word", words[0])
	}
	return accepted, nil
}

// runStage は1カテゴリ分のリクエスト発行・パース・マージを行います。
func (m *Merger) runStage(ctx context.Context, stage string, render func([]string) (string, error), words []string, seeded map[string]*domain.WordRecord) error {
	prompt, err := render(words)
	if err != nil {
		return err
	}

	raw, err := m.completer.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	items, err := completion.ParseArray(raw)
	if err != nil {
		return err
	}

	for _, item := range items {
		token, _ := item["word"].(string)
		if token == "" {
			slog.Warn("応答要素に 'word' キーがないのだ", "stage", stage, "item", item)
			continue
		}
		rec, ok := seeded[token]
		if !ok {
			slog.Warn("応答の語が元のバッチに存在しないのだ", "stage", stage, "word", token)
			continue
		}
		mergeItem(rec, item)
	}
	return nil
}

// mergeItem は応答要素に存在するフィールドだけをレコードへ反映します。
// 要素に含まれないフィールドには触れないため、別ステージで埋まった値を
// 上書きすることはありません。
func mergeItem(rec *domain.WordRecord, item map[string]any) {
	if v, ok := item["canonical_form"].(string); ok {
		rec.CanonicalForm = v
	}
	if v, ok := item["part_of_speech"].(string); ok {
		rec.PartOfSpeech = v
	}
	if v, ok := item["word_type"].(string); ok {
		rec.WordType = domain.WordType(v)
	}
	if v, ok := item["translation"].(string); ok {
		rec.Translation = v
	}
	if v, ok := item["definition"].(string); ok {
		rec.Definition = v
	}
	if v, ok := item["example_sentences"].([]any); ok {
		sentences := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				sentences = append(sentences, str)
			}
		}
		rec.ExampleSentences = sentences
	}
}
