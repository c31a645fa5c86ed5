package cli

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/opportunities-radar/radar/internal/model"
)

func TestBuildConfig_ViperKeys(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("database_dsn", "postgres://cfg-host:5432/radar")
	viper.Set("llm_model", "gpt-4o-mini")

	cfg := buildConfig()

	if cfg.Database.DSN != "postgres://cfg-host:5432/radar" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
}

func TestBuildConfig_FlagOverridesViper(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { runDSN = "" })

	viper.Set("database_dsn", "postgres://cfg-host:5432/radar")
	runDSN = "postgres://flag-host:5432/radar"

	cfg := buildConfig()

	if cfg.Database.DSN != "postgres://flag-host:5432/radar" {
		t.Errorf("dsn = %q, flag should win over the config file", cfg.Database.DSN)
	}
}

func TestBuildConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg := buildConfig()
	want := model.DefaultConfig()

	if cfg.Database.DSN != want.Database.DSN {
		t.Errorf("dsn = %q, want default", cfg.Database.DSN)
	}
	if cfg.HTTP != want.HTTP || cfg.Cache != want.Cache || cfg.Concurrency != want.Concurrency {
		t.Error("non-viper sections must stay at their defaults")
	}
}
