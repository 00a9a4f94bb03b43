package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
)

const testMainToml = `
Title = "storerate"

[Admin]
Token = "from-file"

[Upload]
Dir = "./uploads"

[Webserver]
Port = 8081

[DB]
GormEngine = "sqlite"
Path = "test.db"

[Log]
LogLevel = "info"
AppName = "storerate"
ServiceName = "storerate"
`

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(testMainToml), 0o600))

	t.Setenv("ADMIN_TOKEN", "")
	t.Setenv("PORT", "")
	t.Setenv(config.JSONConfigEnvName, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--config", dir + "/", "--json"})

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		dumpJSON = false
	})

	require.NoError(t, Execute())

	var dumped struct {
		Admin struct {
			Token string
		}
		Webserver struct {
			Port int
		}
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &dumped))

	assert.Equal(t, "from-file", dumped.Admin.Token)
	assert.Equal(t, 8081, dumped.Webserver.Port)
}

func TestConfigCommandMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"config", "--config", t.TempDir() + "/"})
	rootCmd.SetErr(&bytes.Buffer{})

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
	})

	assert.Error(t, Execute())
}
