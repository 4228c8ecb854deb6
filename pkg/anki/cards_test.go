package anki

import (
	"testing"

	"github.com/sassmilic/ankigen-bcs/pkg/domain"
)

func TestAssembleCards(t *testing.T) {
	rec := domain.WordRecord{
		CanonicalForm: "zanos",
		PartOfSpeech:  "imenica",
		WordType:      domain.WordTypeComplex,
		Translation:   "rapture",
		Definition:    "{{c1::Zanos}} označava osjećaj snažnog uzbuđenja.",
		ExampleSentences: []string{
			"Radila je s {{c1::zanosom}}.",
			"Njegov {{c1::zanos}} je zarazan.",
			"U {{c1::zanosu}} je zaboravila na vrijeme.",
		},
	}

	t.Run("通常モードは定義・例文・画像の3枚なのだ", func(t *testing.T) {
		cards := AssembleCards(rec, "zanos_image.png", false)
		if len(cards) != 3 {
			t.Fatalf("3枚のはずなのだ: %d", len(cards))
		}

		if cards[0].Type != CardTypeCloze || cards[0].Text != rec.Definition {
			t.Errorf("1枚目は定義clozeのはずなのだ: %+v", cards[0])
		}
		wantExamples := "<ul><li>Radila je s {{c1::zanosom}}.</li><li>Njegov {{c1::zanos}} je zarazan.</li><li>U {{c1::zanosu}} je zaboravila na vrijeme.</li></ul>"
		if cards[1].Type != CardTypeCloze || cards[1].Text != wantExamples {
			t.Errorf("2枚目は例文clozeのはずなのだ: %+v", cards[1])
		}
		if cards[2].Type != CardTypeBasic || cards[2].Front != "zanos" ||
			cards[2].Back != `<img src="zanos_image.png">` {
			t.Errorf("3枚目は画像basicのはずなのだ: %+v", cards[2])
		}
	})

	t.Run("短絡モードは画像basicの1枚だけなのだ", func(t *testing.T) {
		cards := AssembleCards(rec, "zanos_image.png", true)
		if len(cards) != 1 {
			t.Fatalf("1枚のはずなのだ: %d", len(cards))
		}
		if cards[0].Type != CardTypeBasic || cards[0].Front != "zanos" {
			t.Errorf("画像basicのはずなのだ: %+v", cards[0])
		}
	})
}
