package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# fintrack configuration

[extraction]
# LLM provider for statement extraction: "openai" or "gemini"
provider = "openai"
# Model used with the OpenAI provider
openai_model = "gpt-4o-mini"
# Model used with the Gemini provider
gemini_model = "gemini-2.0-flash"

[portfolio]
# Per-quote fetch timeout in seconds (0 disables the timeout)
quote_timeout_seconds = 10
# Maximum concurrent quote fetches during valuation
max_concurrent_quotes = 4

[storage]
# SQLite database path; defaults to <config dir>/fintrack.db when empty
db_path = ""
`

const credentialsTemplate = `# fintrack credentials
# Credentials may also be supplied via OPENAI_API_KEY / GEMINI_API_KEY.

[openai]
api_key = ""

[gemini]
api_key = ""
`

func createTemplateConfig(configDir string) error {
	return writeTemplate(configDir, "config.toml", configTemplate, 0644)
}

func createTemplateCredentials(configDir string) error {
	// Credentials are secrets, keep them owner-readable only.
	return writeTemplate(configDir, "credentials.toml", credentialsTemplate, 0600)
}

func writeTemplate(configDir, name, content string, perm os.FileMode) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name)
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
