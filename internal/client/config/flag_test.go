package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"visadesk", "-u", "https://flags.example/api", "-t", "25", "-f", "custom.db"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://flags.example/api", cfg.BaseURL)
	require.Equal(t, 25*time.Second, cfg.RequestTimeout)
	require.Equal(t, "custom.db", cfg.DatabaseFile)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"visadesk", "-c", "conf.json", "-u", "https://flags.example/api"}

	cfg := &Config{}
	cfg.LoadDefaults()

	require.NotPanics(t, func() { parseFlags(cfg) })
	require.Equal(t, "https://flags.example/api", cfg.BaseURL)
}
