package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	tmp := t.TempDir()
	present := filepath.Join(tmp, ".env.local")
	requireWriteFile(t, present, "ORGCHART_TEST_ENV_LOAD=ok\n")
	t.Cleanup(func() { _ = os.Unsetenv("ORGCHART_TEST_ENV_LOAD") })

	n, err := LoadEnv([]string{filepath.Join(tmp, ".env"), present})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("ORGCHART_TEST_ENV_LOAD"))
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "charts")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ORG_DUPLICATE_POLICY", " LAST ")

	c, err := Load(nil)
	require.NoError(t, err)
	t.Cleanup(c.Unload)

	require.Equal(t, "db.internal", c.Database.Host)
	require.Equal(t, "5432", c.Database.Port)
	require.Equal(t, 3*time.Second, c.Database.ConnectTimeout)
	require.Equal(t, "host=db.internal port=5432 user=postgres dbname=charts password=postgres sslmode=disable", c.Database.Opts)
	require.Equal(t, "last", c.Org.DuplicatePolicy)
	require.Equal(t, logrus.DebugLevel, c.LogrusLogLevel())
	require.NotNil(t, c.Logger())
}

func TestLoad_RejectsUnknownDuplicatePolicy(t *testing.T) {
	t.Setenv("ORG_DUPLICATE_POLICY", "newest")

	_, err := Load(nil)
	require.ErrorContains(t, err, "ORG_DUPLICATE_POLICY")
}

func TestLoad_FileLoggerWhenLogPathSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	t.Setenv("LOG_PATH", path)
	t.Setenv("LOG_LEVEL", "info")

	c, err := Load(nil)
	require.NoError(t, err)
	c.Logger().Info("hello")
	c.Unload()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello")
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
