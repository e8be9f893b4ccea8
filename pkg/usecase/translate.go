package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// Default translation direction
const (
	DefaultSourceLanguage = "vi"
	DefaultTargetLanguage = "en"
)

type translateUseCase struct {
	providers []interfaces.Translator
	source    string
	target    string
}

// NewTranslate creates the translation use case. Providers are tried in
// order.
func NewTranslate(source, target string, providers ...interfaces.Translator) *translateUseCase {
	if source == "" {
		source = DefaultSourceLanguage
	}
	if target == "" {
		target = DefaultTargetLanguage
	}
	return &translateUseCase{
		providers: providers,
		source:    source,
		target:    target,
	}
}

// Translate returns the first non-empty provider result. When all
// providers fail the original text comes back untranslated.
func (uc *translateUseCase) Translate(ctx context.Context, text, source, target string) *model.TranslationResult {
	if source == "" {
		source = uc.source
	}
	if target == "" {
		target = uc.target
	}

	logger := logging.From(ctx)
	for _, p := range uc.providers {
		out, err := p.Translate(ctx, text, source, target)
		if err != nil {
			logger.Warn("translation provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			logger.Warn("translation provider returned empty text", "provider", p.Name())
			continue
		}

		return &model.TranslationResult{
			TranslatedText: out,
			OriginalText:   text,
			Translated:     true,
			Provider:       p.Name(),
		}
	}

	return &model.TranslationResult{
		TranslatedText: text,
		OriginalText:   text,
		Translated:     false,
	}
}
