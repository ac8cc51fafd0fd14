package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/services/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	content := `server:
  addr: ":9090"
hostaway:
  base_url: "http://localhost:1234/v1"
  listing_timeout: 5s
  report_timeout: 10s
agent:
  model: "gpt-4o-mini"
report:
  max_rows: 50
validation:
  tolerance: "0.01"
postgres:
  dsn: "postgres://atlas@localhost/atlas"
schedule:
  spec: "*/5 * * * *"
  window_days: 7
s3:
  bucket: "atlas-exports"`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := LoadSettings(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Hostaway.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Hostaway.ListingTimeout)
	assert.Equal(t, 10*time.Second, cfg.Hostaway.ReportTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.Agent.Model)
	assert.Equal(t, 50, cfg.Report.MaxRows)
	assert.Equal(t, 5, cfg.Report.DefaultColumns)
	assert.Equal(t, "postgres://atlas@localhost/atlas", cfg.Postgres.DSN)
	assert.Equal(t, "*/5 * * * *", cfg.Schedule.Spec)
	assert.Equal(t, 7, cfg.Schedule.WindowDays)
	assert.Equal(t, "atlas-exports", cfg.S3.Bucket)
	assert.Equal(t, "discrepancies", cfg.S3.Prefix)

	cmp, err := cfg.Comparator()
	require.NoError(t, err)
	assert.Equal(t, validation.DecimalTolerance{Tolerance: decimal.RequireFromString("0.01")}, cmp)
}

func TestLoadSettings_DefaultsAndEnv(t *testing.T) {
	t.Setenv("HOSTAWAY_ATLAS_REPORT_MAX_ROWS", "25")

	cfg, err := LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 25, cfg.Report.MaxRows)
	assert.Equal(t, 60*time.Second, cfg.Hostaway.ListingTimeout)
	assert.Equal(t, 120*time.Second, cfg.Hostaway.ReportTimeout)

	cmp, err := cfg.Comparator()
	require.NoError(t, err)
	assert.Equal(t, validation.ExactFloat{}, cmp)
}

func TestLoadSettings_InvalidInputs_ReturnError(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("server: addr: : bad"), 0o644))
	badTolerance := filepath.Join(dir, "tolerance.yaml")
	require.NoError(t, os.WriteFile(badTolerance, []byte("validation:\n  tolerance: \"cents\""), 0o644))

	for _, path := range []string{badYAML, badTolerance, filepath.Join(dir, "missing.yaml")} {
		_, err := LoadSettings(path)
		assert.Error(t, err, path)
	}
}
