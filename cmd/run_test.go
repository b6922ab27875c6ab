package cmd

import "testing"

func TestPolicyFromConfigDropsBlankKeywords(t *testing.T) {
	search := &SearchConfig{
		Keywords:         []string{" TypeScript ", "", "  ", "\t", "Node"},
		MinSalaryEUR:     50000,
		PreferredCountry: "spain",
	}

	cfg := policyFromConfig(search)

	if len(cfg.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", cfg.Keywords)
	}
	if cfg.Keywords[0] != "typescript" || cfg.Keywords[1] != "node" {
		t.Errorf("keywords must be trimmed and lowered, got %v", cfg.Keywords)
	}
	for _, k := range cfg.Keywords {
		if k == "" {
			t.Error("an empty keyword would match every posting")
		}
	}
	if cfg.MinSalaryEUR != 50000 || cfg.PreferredCountry != "spain" {
		t.Errorf("policy fields not carried over: %+v", cfg)
	}
}

func TestPolicyFromConfigLowersLocationHints(t *testing.T) {
	search := &SearchConfig{
		Keywords:             []string{"go"},
		BlockedLocationHints: []string{" South Africa ", "INDIA"},
	}

	cfg := policyFromConfig(search)

	if len(cfg.BlockedLocationHints) != 2 ||
		cfg.BlockedLocationHints[0] != "south africa" ||
		cfg.BlockedLocationHints[1] != "india" {
		t.Errorf("blocked hints must be trimmed and lowered, got %v", cfg.BlockedLocationHints)
	}
}
