// Package trust holds the static configuration the security core consumes:
// trusted domains, brand/credential keywords, fake-dialog keywords, prompt
// injection phrases, and the numeric risk threshold.
//
// A Config is constructed once at startup and treated as immutable for the
// lifetime of a session. Both the content analyzer and the action mediator
// receive it explicitly; there is no process-wide singleton.
package trust

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the trust and keyword configuration for the security core.
type Config struct {
	// TrustedDomains are substring-matched against page URLs. A match grants
	// reduced (not zero) risk weighting downstream.
	TrustedDomains []string `yaml:"trusted_domains"`

	// BrandKeywords trigger the phishing detector when they appear in visible
	// text on a page that is not an official domain for the brand.
	BrandKeywords []string `yaml:"brand_keywords"`

	// DialogKeywords mark overlay containers as fake system dialogs.
	DialogKeywords []string `yaml:"dialog_keywords"`

	// InjectionPhrases are literal phrases searched case-insensitively in
	// page text to detect prompt injection.
	InjectionPhrases []string `yaml:"injection_phrases"`

	// RiskThreshold is the score (0-10) at or above which the mediator
	// enters its high-risk decision branch.
	RiskThreshold int `yaml:"risk_threshold"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TrustedDomains: []string{
			"bbc.com",
			"google.com",
			"microsoft.com",
			"apple.com",
			"github.com",
			"wikipedia.org",
		},
		BrandKeywords: []string{
			"google",
			"facebook",
			"bank",
			"amazon",
			"microsoft",
			"apple",
			"signin",
			"login",
			"password",
			"credential",
		},
		DialogKeywords: []string{
			"security alert",
			"update now",
			"out of date",
			"vulnerable",
			"critical",
			"scanner",
			"detected",
		},
		InjectionPhrases: []string{
			"ignore previous instructions",
			"ignore all previous instructions",
			"system prompt",
			"new instructions",
			"do not follow",
		},
		RiskThreshold: 4,
	}
}

// Load reads a YAML config from path. A missing file falls back to Default;
// empty fields are filled from the defaults so a partial file stays usable.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse trust config: %w", err)
	}

	def := Default()
	if len(cfg.TrustedDomains) == 0 {
		cfg.TrustedDomains = def.TrustedDomains
	}
	if len(cfg.BrandKeywords) == 0 {
		cfg.BrandKeywords = def.BrandKeywords
	}
	if len(cfg.DialogKeywords) == 0 {
		cfg.DialogKeywords = def.DialogKeywords
	}
	if len(cfg.InjectionPhrases) == 0 {
		cfg.InjectionPhrases = def.InjectionPhrases
	}
	if cfg.RiskThreshold <= 0 || cfg.RiskThreshold > 10 {
		cfg.RiskThreshold = def.RiskThreshold
	}

	return &cfg, nil
}
