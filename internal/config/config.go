package config

// Config holds the wayfarer server configuration.
type Config struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"required,gt=0,lte=65535"`

	// Groq completion API.
	GroqAPIKey  string `koanf:"groq_api_key"`
	GroqBaseURL string `koanf:"groq_base_url" validate:"required,url"`

	// Optional OpenAI-compatible embeddings endpoint. Empty disables
	// semantic memory; the service degrades to buffer + summary + prefs.
	EmbedURL   string `koanf:"embed_url" validate:"omitempty,url"`
	EmbedModel string `koanf:"embed_model"`

	DataDir     string `koanf:"data_dir"`
	MemoryDir   string `koanf:"memory_dir"`
	PrefsDir    string `koanf:"prefs_dir"`
	FrontendDir string `koanf:"frontend_dir"`

	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:        "0.0.0.0",
		Port:        8003,
		GroqBaseURL: "https://api.groq.com/openai/v1",
		EmbedModel:  "all-MiniLM-L6-v2",
		DataDir:     DataDir(),
		MemoryDir:   MemoryDir(),
		PrefsDir:    PrefsDir(),
		FrontendDir: "frontend",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}
