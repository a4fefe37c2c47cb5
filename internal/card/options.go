package card

// PlaceholderAnswer is substituted when a card has no options at all.
// It is shown as the only choice and any submitted answer grades as wrong,
// so a malformed card never fails the whole batch.
const PlaceholderAnswer = "(no answer available)"

// DisplayOptions returns the option texts for a card, applying the
// placeholder policy for cards with zero options. The second return value
// is the correct answer text, or "" when only the placeholder is shown.
func DisplayOptions(opts []Option) ([]string, string) {
	if len(opts) == 0 {
		return []string{PlaceholderAnswer}, ""
	}

	texts := make([]string, 0, len(opts))
	correct := ""
	for _, o := range opts {
		texts = append(texts, o.Text)
		if o.Correct {
			correct = o.Text
		}
	}
	return texts, correct
}
