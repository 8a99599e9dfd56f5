package llm

import "github.com/nguyentantai21042004/genai-workshop/internal/prompts"

// PromptRequest renders a catalog prompt into a Request for the default model.
func PromptRequest(kind prompts.Kind, values map[string]string) (Request, error) {
	tmpl, err := prompts.Get(kind)
	if err != nil {
		return Request{}, err
	}
	system, user, err := tmpl.Format(values)
	if err != nil {
		return Request{}, err
	}
	return Request{Prompt: user, System: system}, nil
}
