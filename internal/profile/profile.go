package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where lumen stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// AI configuration
	AIOpenAIAPIKey    string // LUMEN_AI_OPENAI_API_KEY
	AIOpenAIBaseURL   string // LUMEN_AI_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	AIOpenAIModel     string // LUMEN_AI_OPENAI_MODEL (default: gpt-4o-mini)
	AIDeepSeekAPIKey  string // LUMEN_AI_DEEPSEEK_API_KEY
	AIDeepSeekBaseURL string // LUMEN_AI_DEEPSEEK_BASE_URL (default: https://api.deepseek.com)
	AIDeepSeekModel   string // LUMEN_AI_DEEPSEEK_MODEL (default: deepseek-chat)
	AIGeminiAPIKey    string // LUMEN_AI_GEMINI_API_KEY
	AIGeminiModel     string // LUMEN_AI_GEMINI_MODEL (default: gemini-2.0-flash)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if at least one provider credential is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIOpenAIAPIKey != "" || p.AIDeepSeekAPIKey != "" || p.AIGeminiAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from LUMEN_* environment variables.
func (p *Profile) FromEnv() {
	p.AIOpenAIAPIKey = os.Getenv("LUMEN_AI_OPENAI_API_KEY")
	p.AIOpenAIBaseURL = getEnvOrDefault("LUMEN_AI_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.AIOpenAIModel = getEnvOrDefault("LUMEN_AI_OPENAI_MODEL", "gpt-4o-mini")
	p.AIDeepSeekAPIKey = os.Getenv("LUMEN_AI_DEEPSEEK_API_KEY")
	p.AIDeepSeekBaseURL = getEnvOrDefault("LUMEN_AI_DEEPSEEK_BASE_URL", "https://api.deepseek.com")
	p.AIDeepSeekModel = getEnvOrDefault("LUMEN_AI_DEEPSEEK_MODEL", "deepseek-chat")
	p.AIGeminiAPIKey = os.Getenv("LUMEN_AI_GEMINI_API_KEY")
	p.AIGeminiModel = getEnvOrDefault("LUMEN_AI_GEMINI_MODEL", "gemini-2.0-flash")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}

	if p.Driver == "sqlite" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return err
		}
		p.Data = dataDir
		if p.DSN == "" {
			dbFile := fmt.Sprintf("lumen_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	}

	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires a DSN")
	}

	return nil
}
