package advisor

// Provider names the advisor implementation.
type Provider string

const (
	ProviderNone Provider = "none"
	ProviderLLM  Provider = "llm"
)

// Config configures the advisor. The API key is read from the environment.
type Config struct {
	Provider    Provider `yaml:"provider" json:"provider" validate:"omitempty,oneof=none llm" jsonschema:"title=Provider,enum=none,enum=llm,default=none"`
	BaseURL     string   `yaml:"base_url" json:"base_url" validate:"omitempty,url" jsonschema:"title=Base URL,description=OpenAI compatible API root,default=https://api.openai.com/v1"`
	Model       string   `yaml:"model" json:"model" jsonschema:"title=Model,default=gpt-4o-mini"`
	Temperature float64  `yaml:"temperature" json:"temperature" validate:"gte=0,lte=2" jsonschema:"title=Temperature,default=0"`
	MaxTokens   int      `yaml:"max_tokens" json:"max_tokens" validate:"gte=0" jsonschema:"title=Max Tokens,default=512"`
	// APIKeyEnv is the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env" jsonschema:"title=API Key Env,default=ADVISOR_API_KEY"`
	APIKey    string `yaml:"-" json:"-"`
}

// DefaultConfig returns a disabled advisor configuration.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderNone,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0,
		MaxTokens:   512,
		APIKeyEnv:   "ADVISOR_API_KEY",
	}
}
