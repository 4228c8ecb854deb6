package prompts

import (
	"strings"
	"testing"
)

func TestBuilder_BatchPrompts(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}

	words := []string{"jabuka", "prodrijes"}

	tests := []struct {
		name   string
		render func([]string) (string, error)
		marker string
	}{
		{"構造プロンプト", b.Structural, "word_type"},
		{"定義プロンプト", b.Semantic, "definition"},
		{"例文プロンプト", b.Stylistic, "example_sentences"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"に全トークンが埋め込まれるのだ", func(t *testing.T) {
			got, err := tt.render(words)
			if err != nil {
				t.Fatalf("構築失敗なのだ: %v", err)
			}
			for _, w := range words {
				if !strings.Contains(got, `"`+w+`"`) {
					t.Errorf("トークン %q が見つからないのだ", w)
				}
			}
			if !strings.Contains(got, tt.marker) {
				t.Errorf("期待するフィールド名 %q が含まれないのだ", tt.marker)
			}
			if strings.Contains(got, "<<") {
				t.Error("未展開のプレースホルダが残っているのだ")
			}
		})
	}
}

func TestBuilder_Illustration(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}

	got, err := b.Illustration(IllustrationData{
		Word:         "zanos",
		Gloss:        "rapture",
		PartOfSpeech: "imenica",
	})
	if err != nil {
		t.Fatalf("構築失敗なのだ: %v", err)
	}

	for _, want := range []string{`"zanos"`, `"rapture"`, "imenica", "No text of ANY KIND"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q が含まれるはずなのだ", want)
		}
	}
}

func TestQuoteWordList(t *testing.T) {
	got := QuoteWordList([]string{"jabuka", "stara kuća"})
	want := `"jabuka", "stara kuća"`
	if got != want {
		t.Errorf("期待: %s, 実際: %s", want, got)
	}
}
