package store

// First-run defaults, one constructor per document kind. Every load site goes
// through these; no other package carries fallback literals for persisted
// documents.

// defaultRoster seeds a single general-purpose assistant so a fresh install
// has something to talk to.
func defaultRoster() []Contact {
	return []Contact{
		{
			ID:      1,
			Name:    "Assistant",
			Persona: "You are a helpful AI assistant.",
		},
	}
}

// defaultSettings selects zhipu with its stock model and leaves keys empty.
func defaultSettings() *Settings {
	return &Settings{
		Provider: "zhipu",
		APIKeys: map[string]string{
			"zhipu":       "",
			"siliconflow": "",
		},
		Models: map[string]string{
			"zhipu":       "glm-4-flash",
			"siliconflow": "deepseek-ai/DeepSeek-V3",
			"anthropic":   "claude-3-7-sonnet-latest",
		},
		UseCustomModels: map[string]bool{
			"zhipu":       false,
			"siliconflow": false,
		},
	}
}
