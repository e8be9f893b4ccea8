package model

// TranslationResult is the outcome of a best-effort translation. When every
// provider fails, TranslatedText is the original text and Translated false.
type TranslationResult struct {
	TranslatedText string `json:"translatedText"`
	OriginalText   string `json:"originalText"`
	Translated     bool   `json:"translated"`
	Provider       string `json:"provider,omitempty"`
}
