package profile

import (
	"os"
	"testing"
)

func TestProfileDefaults(t *testing.T) {
	clearAIEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"AIOpenAIBaseURL default", "https://api.openai.com/v1", profile.AIOpenAIBaseURL},
		{"AIOpenAIModel default", "gpt-4o-mini", profile.AIOpenAIModel},
		{"AIDeepSeekBaseURL default", "https://api.deepseek.com", profile.AIDeepSeekBaseURL},
		{"AIDeepSeekModel default", "deepseek-chat", profile.AIDeepSeekModel},
		{"AIGeminiModel default", "gemini-2.0-flash", profile.AIGeminiModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}
}

func TestProfileFromEnv(t *testing.T) {
	clearAIEnvVars()

	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "LUMEN_AI_OPENAI_API_KEY",
			envVar:   "LUMEN_AI_OPENAI_API_KEY",
			envValue: "openai-key",
			field:    func(p *Profile) string { return p.AIOpenAIAPIKey },
			expected: "openai-key",
		},
		{
			name:     "LUMEN_AI_OPENAI_BASE_URL",
			envVar:   "LUMEN_AI_OPENAI_BASE_URL",
			envValue: "https://custom.openai.proxy/v1",
			field:    func(p *Profile) string { return p.AIOpenAIBaseURL },
			expected: "https://custom.openai.proxy/v1",
		},
		{
			name:     "LUMEN_AI_DEEPSEEK_API_KEY",
			envVar:   "LUMEN_AI_DEEPSEEK_API_KEY",
			envValue: "deepseek-key",
			field:    func(p *Profile) string { return p.AIDeepSeekAPIKey },
			expected: "deepseek-key",
		},
		{
			name:     "LUMEN_AI_GEMINI_API_KEY",
			envVar:   "LUMEN_AI_GEMINI_API_KEY",
			envValue: "gemini-key",
			field:    func(p *Profile) string { return p.AIGeminiAPIKey },
			expected: "gemini-key",
		},
		{
			name:     "LUMEN_AI_GEMINI_MODEL",
			envVar:   "LUMEN_AI_GEMINI_MODEL",
			envValue: "gemini-2.5-pro",
			field:    func(p *Profile) string { return p.AIGeminiModel },
			expected: "gemini-2.5-pro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAIEnvVars()
			os.Setenv(tt.envVar, tt.envValue)

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestIsAIEnabled(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*Profile)
		expectedResult bool
	}{
		{
			name:           "no API keys should return false",
			setup:          func(p *Profile) {},
			expectedResult: false,
		},
		{
			name: "OpenAI API key should return true",
			setup: func(p *Profile) {
				p.AIOpenAIAPIKey = "test-key"
			},
			expectedResult: true,
		},
		{
			name: "DeepSeek API key should return true",
			setup: func(p *Profile) {
				p.AIDeepSeekAPIKey = "test-key"
			},
			expectedResult: true,
		},
		{
			name: "Gemini API key should return true",
			setup: func(p *Profile) {
				p.AIGeminiAPIKey = "test-key"
			},
			expectedResult: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &Profile{}
			tt.setup(profile)
			result := profile.IsAIEnabled()
			if result != tt.expectedResult {
				t.Errorf("IsAIEnabled(): expected %v, got %v", tt.expectedResult, result)
			}
		})
	}
}

func clearAIEnvVars() {
	aiEnvVars := []string{
		"LUMEN_AI_OPENAI_API_KEY",
		"LUMEN_AI_OPENAI_BASE_URL",
		"LUMEN_AI_OPENAI_MODEL",
		"LUMEN_AI_DEEPSEEK_API_KEY",
		"LUMEN_AI_DEEPSEEK_BASE_URL",
		"LUMEN_AI_DEEPSEEK_MODEL",
		"LUMEN_AI_GEMINI_API_KEY",
		"LUMEN_AI_GEMINI_MODEL",
	}
	for _, envVar := range aiEnvVars {
		os.Unsetenv(envVar)
	}
}
