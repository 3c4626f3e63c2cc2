package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Weather WeatherConfig `yaml:"weather"`
	Search  SearchConfig  `yaml:"search"`
	Maps    MapsConfig    `yaml:"maps"`
	Planner PlannerConfig `yaml:"planner"`
	Server  ServerConfig  `yaml:"server"`
}

type AIConfig struct {
	Plugin string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model  string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

// WeatherConfig configures the weatherapi.com client
type WeatherConfig struct {
	APIKey         string `yaml:"api_key" env:"WEATHER_API_KEY"`
	BaseURL        string `yaml:"base_url" env:"WEATHER_BASE_URL" env-default:"https://api.weatherapi.com/v1"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"WEATHER_TIMEOUT_SECONDS" env-default:"10"`
}

// SearchConfig configures the SerpAPI client used for flight and hotel search.
// One key covers both engines.
type SearchConfig struct {
	APIKey         string `yaml:"api_key" env:"SERPAPI_API_KEY"`
	BaseURL        string `yaml:"base_url" env:"SERPAPI_BASE_URL" env-default:"https://serpapi.com"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"SERPAPI_TIMEOUT_SECONDS" env-default:"30"`
	FlightLimit    int    `yaml:"flight_limit" env:"SERPAPI_FLIGHT_LIMIT" env-default:"5"`
	HotelLimit     int    `yaml:"hotel_limit" env:"SERPAPI_HOTEL_LIMIT" env-default:"5"`
}

type MapsConfig struct {
	APIKey string `yaml:"api_key" env:"GOOGLE_MAPS_API_KEY"`
}

// PlannerConfig tunes the itinerary orchestrator
type PlannerConfig struct {
	ProviderTimeoutSeconds int    `yaml:"provider_timeout_seconds" env:"PROVIDER_TIMEOUT_SECONDS" env-default:"30"`
	MaxToolSteps           int    `yaml:"max_tool_steps" env:"MAX_TOOL_STEPS" env-default:"12"`
	PackingRulesPath       string `yaml:"packing_rules_path" env:"PACKING_RULES_PATH"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
