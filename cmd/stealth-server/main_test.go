package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveDirName(t *testing.T) {
	cases := map[string]string{
		"alice":          "alice",
		"bob-2_x":        "bob-2_x",
		"../../etc":      "______etc",
		"..":             "__",
		"/root":          "_root",
		"":               "anonymous",
		"eve\x00.ssh/id": "eve__ssh_id",
	}

	for user, want := range cases {
		got := saveDirName(user)
		assert.Equal(t, want, got, "user %q", user)
		assert.True(t, filepath.IsLocal(got), "user %q", user)
		assert.Equal(t, got, filepath.Base(got), "user %q", user)
	}
}

func TestLoadConfig_SaveDir(t *testing.T) {
	t.Setenv("STEALTH_SAVE_DIR", "/var/lib/stealth/saves")
	cfg, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "/var/lib/stealth/saves", cfg.saveDir)

	t.Setenv("STEALTH_DIFFICULTY", "impossible")
	_, err = loadConfig()
	assert.Error(t, err)
}
