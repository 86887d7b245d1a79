package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	p, err := config.DefaultPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".bookcorner", "credentials.json"), p)
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.False(t, creds.SignedIn())
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json")

	want := &config.Credentials{Session: "sid", Server: "http://127.0.0.1:8080", Email: "a@b.c"}
	require.NoError(t, config.Save(p, want))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.True(t, got.SignedIn())
}

func TestSave_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, config.Save(p, &config.Credentials{Session: "sid"}))

	st, err := os.Stat(p)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestLoad_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestClear_MissingFileIsNotError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, config.Clear(p))

	require.NoError(t, config.Save(p, &config.Credentials{Session: "sid"}))
	require.NoError(t, config.Clear(p))
	_, err := os.Stat(p)
	require.True(t, os.IsNotExist(err))
}
