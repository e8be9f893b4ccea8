package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

const llmSystemPrompt = `You translate bug reports written by QA engineers.
Translate the user's message from %s to %s.
Keep issue keys, URLs, code, numbers and product names unchanged.
Answer with the translated text only, without quotes or commentary.`

// LLM translates through a gollem client, e.g. Gemini on Vertex AI
type LLM struct {
	client gollem.LLMClient
}

// NewLLM creates the provider
func NewLLM(client gollem.LLMClient) *LLM {
	return &LLM{client: client}
}

func (x *LLM) Name() string { return "llm" }

func (x *LLM) Translate(ctx context.Context, text, source, target string) (string, error) {
	logger := logging.From(ctx)

	session, err := x.client.NewSession(ctx,
		gollem.WithSessionSystemPrompt(fmt.Sprintf(llmSystemPrompt, languageName(source), languageName(target))),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(text))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM content")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("no response from LLM")
	}

	out := strings.TrimSpace(strings.Join(resp.Texts, ""))
	logger.Debug("LLM translation done", "input_length", len(text), "output_length", len(out))
	return out, nil
}

var languageNames = map[string]string{
	"vi": "Vietnamese",
	"en": "English",
	"ja": "Japanese",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
