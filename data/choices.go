package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed choices.yaml
var defaultChoices []byte

// Choices are the static option lists shown on the form. They are display
// configuration only; submissions are not checked against them.
type Choices struct {
	Jobs               []string `yaml:"jobs" json:"jobs"`
	Hours              []string `yaml:"hours" json:"hours"`
	Active             []string `yaml:"active" json:"active"`
	Years              []string `yaml:"years" json:"years"`
	SocialMediaReasons []string `yaml:"social_media_reasons" json:"social_media_reasons"`
	AppReasons         []string `yaml:"app_reasons" json:"app_reasons"`
}

// DefaultChoices returns the built-in lists.
func DefaultChoices() (*Choices, error) {
	return parseChoices(defaultChoices)
}

// LoadChoices reads lists from path, or the built-in ones when path is empty.
func LoadChoices(path string) (*Choices, error) {
	if path == "" {
		return DefaultChoices()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read choices: %w", err)
	}
	return parseChoices(raw)
}

func parseChoices(raw []byte) (*Choices, error) {
	var c Choices
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode choices: %w", err)
	}
	return &c, nil
}
