package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service consumes.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Agent    AgentConfig
	Callback CallbackConfig
}

// Load reads the full configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	agent, err := loadAgentConfig()
	if err != nil {
		return nil, err
	}

	cb, err := loadCallbackConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Agent: agent, Callback: cb}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr   string
	APIKey string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	return ServerConfig{
		Addr:   addr,
		APIKey: getEnvOrDefault("API_SECRET_KEY", "default-dev-key-change-in-production"),
	}, nil
}

// AIConfig describes the chat model shared by the detector and actor.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether model credentials were supplied. Without them the
// service runs on the heuristic collaborators.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("model credentials missing: provide ARK_API_KEY + MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// AgentConfig holds the engagement thresholds and collaborator timeouts.
type AgentConfig struct {
	MaxTurns                int
	MinIntelligenceKinds    int
	StaleTurnThreshold      int
	ScamConfidenceThreshold float64
	DetectTimeout           time.Duration
	ReplyTimeout            time.Duration
	SessionMaxAge           time.Duration
}

func loadAgentConfig() (AgentConfig, error) {
	maxTurns, err := parseIntEnv("MAX_CONVERSATION_TURNS", 20)
	if err != nil {
		return AgentConfig{}, err
	}

	minKinds, err := parseIntEnv("MIN_INTELLIGENCE_THRESHOLD", 2)
	if err != nil {
		return AgentConfig{}, err
	}

	staleThreshold, err := parseIntEnv("STALE_CONVERSATION_THRESHOLD", 5)
	if err != nil {
		return AgentConfig{}, err
	}

	confidence, err := parseFloatEnv("SCAM_CONFIDENCE_THRESHOLD", 0.7)
	if err != nil {
		return AgentConfig{}, err
	}

	detectTimeout, err := parseIntEnv("DETECT_TIMEOUT", 10)
	if err != nil {
		return AgentConfig{}, err
	}

	replyTimeout, err := parseIntEnv("REPLY_TIMEOUT", 10)
	if err != nil {
		return AgentConfig{}, err
	}

	maxAgeHours, err := parseIntEnv("SESSION_MAX_AGE_HOURS", 24)
	if err != nil {
		return AgentConfig{}, err
	}

	return AgentConfig{
		MaxTurns:                maxTurns,
		MinIntelligenceKinds:    minKinds,
		StaleTurnThreshold:      staleThreshold,
		ScamConfidenceThreshold: confidence,
		DetectTimeout:           time.Duration(detectTimeout) * time.Second,
		ReplyTimeout:            time.Duration(replyTimeout) * time.Second,
		SessionMaxAge:           time.Duration(maxAgeHours) * time.Hour,
	}, nil
}

// CallbackConfig describes the termination-callback endpoint.
type CallbackConfig struct {
	Enabled    bool
	URL        string
	Timeout    time.Duration
	MaxRetries int
}

func loadCallbackConfig() (CallbackConfig, error) {
	enabled, err := parseBoolEnv("CALLBACK_ENABLED", false)
	if err != nil {
		return CallbackConfig{}, err
	}

	timeout, err := parseIntEnv("CALLBACK_TIMEOUT", 10)
	if err != nil {
		return CallbackConfig{}, err
	}

	retries, err := parseIntEnv("CALLBACK_MAX_RETRIES", 3)
	if err != nil {
		return CallbackConfig{}, err
	}

	return CallbackConfig{
		Enabled:    enabled,
		URL:        strings.TrimSpace(os.Getenv("CALLBACK_URL")),
		Timeout:    time.Duration(timeout) * time.Second,
		MaxRetries: retries,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
