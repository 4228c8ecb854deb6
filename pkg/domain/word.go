package domain

// WordType は画像取得の戦略を決めるための分類です。
type WordType string

const (
	// WordTypeSimple は写真検索で十分に表現できる具体物を表します。
	WordTypeSimple WordType = "SIMPLE"
	// WordTypeComplex は抽象概念・動作・感情など、生成画像に向く語を表します。
	WordTypeComplex WordType = "COMPLEX"
)

// partsOfSpeech はプロンプトが返しうる品詞タグの閉じた集合です（BCS表記）。
var partsOfSpeech = map[string]struct{}{
	"imenica":   {}, // 名詞
	"glagol":    {}, // 動詞
	"pridjev":   {}, // 形容詞
	"prilog":    {}, // 副詞
	"zamjenica": {}, // 代名詞
	"prijedlog": {}, // 前置詞
	"veznik":    {}, // 接続詞
	"uzvik":     {}, // 間投詞
}

// IsValidPartOfSpeech は品詞タグが既知の集合に含まれるかを返します。
func IsValidPartOfSpeech(pos string) bool {
	_, ok := partsOfSpeech[pos]
	return ok
}

// WordRecord はパイプラインを流れる1語分の累積状態です。
// OriginalToken は入力リストの生の表記（誤記の可能性あり）で、
// 各リクエストの応答とレコードを突き合わせる結合キーになります。
type WordRecord struct {
	OriginalToken    string   `json:"word"`
	CanonicalForm    string   `json:"canonical_form"`
	PartOfSpeech     string   `json:"part_of_speech"`
	WordType         WordType `json:"word_type"`
	Translation      string   `json:"translation"`
	Definition       string   `json:"definition"`
	ExampleSentences []string `json:"example_sentences"`

	// ImagePath は取得・生成した画像の保存先。パイプラインの最後に埋まります。
	ImagePath string `json:"-"`
}
