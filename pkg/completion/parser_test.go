package completion

import (
	"errors"
	"testing"
)

func TestParseArray(t *testing.T) {
	t.Run("生のJSON配列をそのまま解釈できるのだ", func(t *testing.T) {
		items, err := ParseArray(`[{"word":"jabuka","translation":"apple"}]`)
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if len(items) != 1 || items[0]["word"] != "jabuka" {
			t.Errorf("要素が正しくないのだ: %+v", items)
		}
	})

	t.Run("Markdownフェンス付きでも解釈できるのだ", func(t *testing.T) {
		raw := "```json\n[{\"word\":\"zanos\"}]\n```"
		items, err := ParseArray(raw)
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if len(items) != 1 || items[0]["word"] != "zanos" {
			t.Errorf("要素が正しくないのだ: %+v", items)
		}
	})

	t.Run("JSONでないテキストは ErrMalformedResponse なのだ", func(t *testing.T) {
		if _, err := ParseArray("Izvinite, ne mogu to da uradim."); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ErrMalformedResponse が返るはずなのだ: %v", err)
		}
	})

	t.Run("配列でないJSONも拒否するのだ", func(t *testing.T) {
		if _, err := ParseArray(`{"word":"jabuka"}`); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ErrMalformedResponse が返るはずなのだ: %v", err)
		}
	})

	t.Run("空文字列も拒否するのだ", func(t *testing.T) {
		if _, err := ParseArray("   "); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ErrMalformedResponse が返るはずなのだ: %v", err)
		}
	})
}
