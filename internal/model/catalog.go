package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceDefinition is one catalog entry. The catalog seeds the sources
// table; it never updates existing rows.
type SourceDefinition struct {
	Name      string   `yaml:"name"`
	Kind      Kind     `yaml:"kind"`
	URL       string   `yaml:"url"`
	Category  Category `yaml:"category"`
	Extractor string   `yaml:"extractor,omitempty"`
	Enabled   bool     `yaml:"enabled"`
}

// DefaultCatalog returns the built-in set of monitored sources.
func DefaultCatalog() []SourceDefinition {
	return []SourceDefinition{
		{
			Name:      "Base Grants",
			Kind:      KindHTML,
			URL:       "https://paragraph.xyz/@grants.base.eth",
			Category:  CategoryGrants,
			Extractor: "paragraph",
			Enabled:   true,
		},
		{
			Name:      "Optimism Grants",
			Kind:      KindHTML,
			URL:       "https://app.charmverse.io/op-grants",
			Category:  CategoryGrants,
			Extractor: "charmverse",
			Enabled:   true,
		},
		{
			Name:      "Base Blog",
			Kind:      KindHTML,
			URL:       "https://base.org/blog",
			Category:  CategoryProtocol,
			Extractor: "base-blog",
			Enabled:   true,
		},
		{
			Name:      "Farcaster Blog",
			Kind:      KindHTML,
			URL:       "https://www.farcaster.xyz/blog",
			Category:  CategoryEcosystem,
			Extractor: "farcaster-blog",
			Enabled:   true,
		},
		{
			Name:      "Warpcast Updates",
			Kind:      KindHTML,
			URL:       "https://warpcast.notion.site/Warpcast-Release-Notes-a2ae1e01e5a84bd39da4a3bf5bc53982",
			Category:  CategoryEcosystem,
			Extractor: "notion",
			Enabled:   true,
		},
		{
			Name:      "Base Governance",
			Kind:      KindHTML,
			URL:       "https://snapshot.org/#/basegovernance.eth",
			Category:  CategoryGovernance,
			Extractor: "snapshot",
			Enabled:   true,
		},
		{
			Name:      "Optimism Forum",
			Kind:      KindHTML,
			URL:       "https://gov.optimism.io/c/proposals/38",
			Category:  CategoryGovernance,
			Extractor: "discourse",
			Enabled:   true,
		},
		{
			Name:      "Purple DAO",
			Kind:      KindHTML,
			URL:       "https://purple.construction",
			Category:  CategoryGrants,
			Extractor: "purple",
			Enabled:   true,
		},
	}
}

// LoadCatalog reads a source catalog from a YAML file.
func LoadCatalog(path string) ([]SourceDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var defs []SourceDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, def := range defs {
		if def.Name == "" || def.URL == "" {
			return nil, fmt.Errorf("catalog entry %d: name and url are required", i)
		}
	}

	return defs, nil
}
