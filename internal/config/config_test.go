package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" || cfg.Database.Driver != DriverMongo {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.JWT.Expiration != time.Hour || cfg.Adaptive.AnalysisWindowWeeks != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.S3.Enabled() {
		t.Error("expected snapshot storage to be disabled without a bucket")
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "database:\n  driver: memory\ns3:\n  bucket_name: snapshots\nadaptive:\n  analysis_window_weeks: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ADAPTIVE_ANALYSIS_WINDOW_WEEKS", "4")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != DriverMemory || !cfg.S3.Enabled() {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("JWT.Secret = %q, want from-env", cfg.JWT.Secret)
	}
	if cfg.Adaptive.AnalysisWindowWeeks != 4 {
		t.Errorf("AnalysisWindowWeeks = %d, want the environment to win", cfg.Adaptive.AnalysisWindowWeeks)
	}
}
