package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"redis": map[string]any{
			"reportTTL": "60s",
		},
		"analytics": map[string]any{
			"highValueMinSpent": 10000,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "REDIS_REPORTTTL", want: "redis.reportTTL"},
		{envKey: "ANALYTICS_HIGHVALUEMINSPENT", want: "analytics.highValueMinSpent"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestWithAnalyticsDefaults_FillsZeroValues(t *testing.T) {
	cfg := withAnalyticsDefaults(nil)

	if cfg.TopProductsWindowDays != 180 {
		t.Errorf("TopProductsWindowDays = %d, want 180", cfg.TopProductsWindowDays)
	}
	if cfg.TopProductsLimit != 5 {
		t.Errorf("TopProductsLimit = %d, want 5", cfg.TopProductsLimit)
	}
	if cfg.HighValueMinSpent != 10000 {
		t.Errorf("HighValueMinSpent = %d, want 10000", cfg.HighValueMinSpent)
	}
	if cfg.CancellationMinCount != 2 {
		t.Errorf("CancellationMinCount = %d, want 2", cfg.CancellationMinCount)
	}
}

func TestWithAnalyticsDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := withAnalyticsDefaults(&AnalyticsConfig{
		TopProductsLimit:  10,
		HighValueMinSpent: 50000,
	})

	if cfg.TopProductsLimit != 10 {
		t.Errorf("TopProductsLimit = %d, want 10", cfg.TopProductsLimit)
	}
	if cfg.HighValueMinSpent != 50000 {
		t.Errorf("HighValueMinSpent = %d, want 50000", cfg.HighValueMinSpent)
	}
	if cfg.StockProjectionDays != 30 {
		t.Errorf("StockProjectionDays = %d, want 30", cfg.StockProjectionDays)
	}
}
