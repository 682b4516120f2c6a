// Package reference holds the static help content shown in the quick-fix and
// service-info panels.
package reference

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var referenceYAML []byte

type Item struct {
	Text    string `yaml:"text"`
	Command string `yaml:"command,omitempty"`
}

type Section struct {
	Heading string `yaml:"heading"`
	Ordered bool   `yaml:"ordered,omitempty"`
	Items   []Item `yaml:"items"`
}

type QuickFix struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

type Service struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Port        int       `yaml:"port,omitempty"`
	Sections    []Section `yaml:"sections"`
}

type Tables struct {
	QuickFixes map[string]QuickFix `yaml:"quickFixes"`
	Services   map[string]Service  `yaml:"services"`
}

// Parse reads lookup tables from YAML.
func Parse(data []byte) (*Tables, error) {
	t := &Tables{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, errors.Wrap(err, "parsing reference tables")
	}
	return t, nil
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded tables. They are parsed once and must not be
// modified by callers.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Parse(referenceYAML)
		if err != nil {
			panic(err)
		}
		defaultTables = t
	})
	return defaultTables
}

func (t *Tables) QuickFix(category string) (QuickFix, bool) {
	fix, ok := t.QuickFixes[category]
	return fix, ok
}

func (t *Tables) Service(name string) (Service, bool) {
	svc, ok := t.Services[name]
	return svc, ok
}
