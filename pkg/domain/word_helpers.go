package domain

// MissingFields は、レコード受理に必要な項目のうち欠けているものを列挙します。
// simpleNouns が真のときは definition / example_sentences を要求しません。
// 空のスライスは「受理可能」を意味します。
func (r WordRecord) MissingFields(simpleNouns bool) []string {
	var missing []string
	if r.CanonicalForm == "" {
		missing = append(missing, "canonical_form")
	}
	if r.PartOfSpeech == "" {
		missing = append(missing, "part_of_speech")
	}
	if r.WordType == "" {
		missing = append(missing, "word_type")
	}
	if r.Translation == "" {
		missing = append(missing, "translation")
	}
	if !simpleNouns {
		if r.Definition == "" {
			missing = append(missing, "definition")
		}
		if len(r.ExampleSentences) == 0 {
			missing = append(missing, "example_sentences")
		}
	}
	return missing
}

// Acceptable は受理条件（§必須フィールドの充足）を満たすかを返します。
func (r WordRecord) Acceptable(simpleNouns bool) bool {
	return len(r.MissingFields(simpleNouns)) == 0
}
