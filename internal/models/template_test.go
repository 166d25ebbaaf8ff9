package models

import (
	"errors"
	"testing"
)

// TestCatalogValuesDistinct ensures no catalog contains duplicate ids.
func TestCatalogValuesDistinct(t *testing.T) {
	catalogs := map[string][]Option{
		"site types": SiteTypes,
		"stylings":   Stylings,
		"features":   Features,
	}

	for name, opts := range catalogs {
		t.Run(name, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, o := range opts {
				if seen[o.Value] {
					t.Errorf("duplicate value: %q", o.Value)
				}
				seen[o.Value] = true
			}
		})
	}
}

func TestValidSiteType(t *testing.T) {
	tests := []struct {
		in   SiteType
		want bool
	}{
		{SiteTypePortfolio, true},
		{SiteTypeWiki, true},
		{SiteTypeEcommerce, true},
		{"", false},
		{"store", false},
		{"Blog", false},
	}

	for _, tc := range tests {
		if got := ValidSiteType(tc.in); got != tc.want {
			t.Errorf("ValidSiteType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEmptyConfig(t *testing.T) {
	cfg := EmptyConfig()
	if cfg.Features == nil {
		t.Fatal("Features should be a non-nil empty slice")
	}
	if cfg.CanGenerate() {
		t.Error("empty config must not be generatable")
	}
}

func TestWithFeature(t *testing.T) {
	t.Run("adds catalog feature once", func(t *testing.T) {
		cfg, err := EmptyConfig().WithFeature(FeatureDarkMode)
		if err != nil {
			t.Fatalf("WithFeature: %v", err)
		}
		cfg, err = cfg.WithFeature(FeatureDarkMode)
		if err != nil {
			t.Fatalf("WithFeature: %v", err)
		}
		if len(cfg.Features) != 1 {
			t.Errorf("features: got %v, want exactly one", cfg.Features)
		}
	})

	t.Run("rejects unknown feature", func(t *testing.T) {
		cfg, err := EmptyConfig().WithFeature("telepathy")
		if !errors.Is(err, ErrUnknownFeature) {
			t.Errorf("error: got %v, want ErrUnknownFeature", err)
		}
		if len(cfg.Features) != 0 {
			t.Errorf("features should be unchanged, got %v", cfg.Features)
		}
	})

	t.Run("does not alias the original slice", func(t *testing.T) {
		orig := TemplateConfig{Features: make([]Feature, 0, 4)}
		a, _ := orig.WithFeature(FeatureSEO)
		b, _ := orig.WithFeature(FeatureAnalytics)
		if a.Features[0] != FeatureSEO || b.Features[0] != FeatureAnalytics {
			t.Errorf("copies share storage: a=%v b=%v", a.Features, b.Features)
		}
	})
}

func TestWithoutFeature(t *testing.T) {
	cfg := TemplateConfig{Features: []Feature{FeatureSEO, FeatureResponsive, FeatureSEO}}
	out := cfg.WithoutFeature(FeatureSEO)

	if out.Has(FeatureSEO) {
		t.Errorf("seo should be removed: %v", out.Features)
	}
	if !out.Has(FeatureResponsive) {
		t.Errorf("responsive should remain: %v", out.Features)
	}
	if len(cfg.Features) != 3 {
		t.Errorf("original mutated: %v", cfg.Features)
	}
}

func TestNormalize(t *testing.T) {
	cfg := TemplateConfig{
		Type:     SiteTypeBlog,
		Name:     "Notes",
		Features: []Feature{"responsive", "bogus", "responsive", "seo"},
	}

	got := cfg.Normalize()
	if len(got.Features) != 2 || got.Features[0] != FeatureResponsive || got.Features[1] != FeatureSEO {
		t.Errorf("features: got %v, want [responsive seo]", got.Features)
	}
	if got.Type != SiteTypeBlog || got.Name != "Notes" {
		t.Errorf("type/name changed: %+v", got)
	}

	if n := (TemplateConfig{}).Normalize(); n.Features == nil {
		t.Error("Normalize must return a non-nil feature slice")
	}
}

func TestFeatureNamesCatalogOrder(t *testing.T) {
	cfg := TemplateConfig{Features: []Feature{FeatureSEO, FeatureResponsive}}
	got := cfg.FeatureNames()
	if len(got) != 2 || got[0] != "responsive" || got[1] != "seo" {
		t.Errorf("FeatureNames: got %v, want [responsive seo]", got)
	}
}
