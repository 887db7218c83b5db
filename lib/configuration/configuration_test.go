package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type scrapeConfig struct {
	UserAgent string `json:"user_agent"`
	RatePerMs int    `json:"rate_per_ms"`
	OutputDir string `json:"output_dir"`
}

func TestReadMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "scrape.json5"), []byte(`{
		// defaults checked into the repo
		user_agent: "legiscrape/1.0",
		rate_per_ms: 3000,
		output_dir: "out",
	}`), 0644)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(dir, "scrape.local.json5"), []byte(`{
		rate_per_ms: 500,
	}`), 0644)
	require.NoError(t, err)

	config, err := Read[scrapeConfig](filepath.Join(dir, "scrape.json5"))
	require.NoError(t, err)
	require.Equal(t, "legiscrape/1.0", config.UserAgent)
	require.Equal(t, 500, config.RatePerMs)
	require.Equal(t, "out", config.OutputDir)
}

func TestReadLocalOnly(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "scrape.local.json5"), []byte(`{
		user_agent: "legiscrape/dev",
	}`), 0644)
	require.NoError(t, err)

	config, err := Read[scrapeConfig](filepath.Join(dir, "scrape.json5"))
	require.NoError(t, err)
	require.Equal(t, "legiscrape/dev", config.UserAgent)
}

func TestReadNotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := Read[scrapeConfig](filepath.Join(dir, "scrape.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
