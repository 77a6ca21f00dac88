package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "ORG_ROLLUP_TEST_ENV_LOAD=ok\n")
	t.Setenv("ORG_ROLLUP_TEST_ENV_LOAD", "")
	require.NoError(t, os.Unsetenv("ORG_ROLLUP_TEST_ENV_LOAD"))

	n, err := LoadEnv([]string{filepath.Join(tmp, ".env"), filepath.Join(tmp, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("ORG_ROLLUP_TEST_ENV_LOAD"))
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "warn", c.LogLevel)
	require.Equal(t, "text", c.LogFormat)
	require.Equal(t, "org-collection-output.txt", c.OutputFileName)
	require.Equal(t, "text", c.ReportFormat)
	require.Empty(t, c.MetricsTextfile)
	require.False(t, c.StrictOrphans)
	require.Equal(t, logrus.WarnLevel, c.LogrusLogLevel())
	require.NotNil(t, c.Logger(nil))
}

func TestLoad_ReadsPrefixedEnv(t *testing.T) {
	t.Setenv("ORG_ROLLUP_LOG_LEVEL", "DEBUG")
	t.Setenv("ORG_ROLLUP_REPORT_FORMAT", "xlsx")
	t.Setenv("ORG_ROLLUP_OUTPUT_FILE_NAME", "report.xlsx")
	t.Setenv("ORG_ROLLUP_STRICT_ORPHANS", "true")

	c, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "debug", c.LogLevel)
	require.Equal(t, logrus.DebugLevel, c.LogrusLogLevel())
	require.Equal(t, "xlsx", c.ReportFormat)
	require.Equal(t, "report.xlsx", c.OutputFileName)
	require.True(t, c.StrictOrphans)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("ORG_ROLLUP_REPORT_FORMAT", "pdf")
	t.Setenv("ORG_ROLLUP_LOG_FORMAT", "xml")

	_, err := Load(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ORG_ROLLUP_REPORT_FORMAT")
	require.Contains(t, err.Error(), "ORG_ROLLUP_LOG_FORMAT")
}

func TestValidate_RejectsOutputPath(t *testing.T) {
	c := &Configuration{LogLevel: "warn", LogFormat: "text", ReportFormat: "text", OutputFileName: "../escape.txt"}
	err := c.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "OUTPUT_FILE_NAME")
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
