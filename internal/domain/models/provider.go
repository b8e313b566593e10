package models

// ProviderConfig holds the network and model parameters for one
// chat-completion endpoint. The pipeline reads it as opaque configuration
// and only coerces numeric fields to defaults when they are absent.
type ProviderConfig struct {
	Provider         string   `json:"provider"`
	APIURL           string   `json:"apiUrl"`
	APIKey           string   `json:"apiKey"`
	Model            string   `json:"model"`
	Temperature      float64  `json:"temperature"`
	MaxTokens        int      `json:"max_tokens"`
	TopP             float64  `json:"top_p"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
	PresencePenalty  float64  `json:"presence_penalty"`
	ModelList        []string `json:"modelList,omitempty"`
}

// ProviderSettings groups the two independent configs kept per provider:
// one for chat completion, one for reasoning.
type ProviderSettings struct {
	ChatConfig      ProviderConfig `json:"chatConfig"`
	ReasoningConfig ProviderConfig `json:"reasoningConfig"`
}

// Sampling defaults applied when a config field is absent or non-numeric.
const (
	DefaultTemperature      = 0.7
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
	DefaultMaxTokens        = 1000
)

// WithDefaults returns a copy of the config with zero-valued sampling
// parameters replaced by the given fallback config's values, and any still
// unset numeric fields replaced by the global defaults.
func (c ProviderConfig) WithDefaults(fallback ProviderConfig) ProviderConfig {
	if c.Temperature <= 0 {
		c.Temperature = fallback.Temperature
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.TopP <= 0 {
		c.TopP = fallback.TopP
	}
	if c.TopP <= 0 {
		c.TopP = DefaultTopP
	}
	if c.FrequencyPenalty == 0 {
		c.FrequencyPenalty = fallback.FrequencyPenalty
	}
	if c.PresencePenalty == 0 {
		c.PresencePenalty = fallback.PresencePenalty
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = fallback.MaxTokens
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Model == "" {
		c.Model = fallback.Model
	}
	return c
}

// DefaultProviders returns the built-in provider presets used when no
// providersConfig has been stored yet.
func DefaultProviders() map[string]ProviderSettings {
	openai := ProviderConfig{
		Provider:         "OpenAI",
		APIURL:           "https://api.openai.com/v1",
		Model:            "gpt-4o",
		Temperature:      DefaultTemperature,
		MaxTokens:        DefaultMaxTokens,
		TopP:             DefaultTopP,
		FrequencyPenalty: DefaultFrequencyPenalty,
		PresencePenalty:  DefaultPresencePenalty,
		ModelList:        []string{"gpt-4o", "gpt-4o-mini"},
	}
	deepseekChat := ProviderConfig{
		Provider:         "DeepSeek",
		APIURL:           "https://api.deepseek.com/v1",
		Model:            "deepseek-chat",
		Temperature:      0.9,
		MaxTokens:        4096,
		TopP:             0.7,
		FrequencyPenalty: 0.7,
		PresencePenalty:  0.7,
		ModelList:        []string{"deepseek-chat", "deepseek-reasoner"},
	}
	deepseekReasoning := deepseekChat
	deepseekReasoning.Model = "deepseek-reasoner"

	return map[string]ProviderSettings{
		"OpenAI":   {ChatConfig: openai, ReasoningConfig: openai},
		"DeepSeek": {ChatConfig: deepseekChat, ReasoningConfig: deepseekReasoning},
	}
}
