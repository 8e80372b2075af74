package provider

import (
	"fmt"

	"github.com/rmarques/confab/internal/store"
)

// endpoints maps OpenAI-compatible provider names to their base URLs.
// Anthropic is not listed: it uses its own SDK default endpoint.
var endpoints = map[string]string{
	"zhipu":       "https://open.bigmodel.cn/api/paas/v4",
	"siliconflow": "https://api.siliconflow.cn/v1",
}

// Resolve builds a Completer and model name for the active provider in the
// given settings. The store's default settings document is the single
// authority for default model names; Resolve only reads what is there.
func Resolve(cfg *store.Settings) (Completer, string, error) {
	name := cfg.Provider
	key := cfg.APIKeys[name]
	if key == "" {
		return nil, "", fmt.Errorf("no API key configured for provider %q", name)
	}
	model := cfg.Models[name]
	if model == "" {
		return nil, "", fmt.Errorf("no model configured for provider %q", name)
	}

	if name == "anthropic" {
		return NewAnthropic(key), model, nil
	}
	base, ok := endpoints[name]
	if !ok {
		return nil, "", fmt.Errorf("unknown provider %q", name)
	}
	return NewOpenAICompat(base, key), model, nil
}
