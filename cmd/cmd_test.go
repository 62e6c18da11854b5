package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedSetupDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	initConfig()

	require.NoError(t, sharedSetup(context.Background(), fitCmd, []string{"a.csv", "b.csv"}))
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.Files)
	assert.Equal(t, contract.TextOut, cfg.Output)
	assert.Equal(t, contract.DefaultPrecision, cfg.Precision)
	require.NotNil(t, cfg.Seasonal)
	assert.Equal(t, trend.Spline, cfg.Seasonal.Trend)
	assert.Equal(t, contract.DefaultThresh, cfg.Seasonal.Thresh)
	assert.Equal(t, contract.DefaultWorkers, cfg.Seasonal.Workers)
}

func TestSharedSetupEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GOSEASONAL_TREND", "median")
	t.Setenv("GOSEASONAL_MIN_PERIOD", "5")
	initConfig()

	require.NoError(t, sharedSetup(context.Background(), fitCmd, []string{"a.csv"}))
	assert.Equal(t, trend.Median, cfg.Seasonal.Trend)
	assert.Equal(t, 5, cfg.Seasonal.MinPeriod)
}

func TestSharedSetupRequiresFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	initConfig()
	assert.Error(t, sharedSetup(context.Background(), fitCmd, nil))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "goseasonal CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}
