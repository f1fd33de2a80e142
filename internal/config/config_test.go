package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultUsersFile, cfg.Storage.UsersFile)
	assert.Equal(t, defaultUploadsDir, cfg.Storage.UploadsDir)
	assert.Equal(t, defaultSessionIssuer, cfg.App.SessionIssuer)
	assert.Equal(t, defaultSessionTTL, cfg.App.SessionTTL)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.Server.HTTPAddress = "127.0.0.1:9090"
	cfg.App.SessionTTL = time.Hour

	cfg.applyDefaults()

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Hour, cfg.App.SessionTTL)
}

func TestValidate_RequiresSignKey(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	assert.ErrorIs(t, cfg.validate(), ErrMissingSessionSignKey)

	cfg.App.SessionSignKey = "secret"
	assert.NoError(t, cfg.validate())
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"app": {
			"session_sign_key": "from-json",
			"session_ttl": "45m",
			"bcrypt_cost": 12
		},
		"storage": {
			"users_file": "/var/lib/community/users.csv",
			"uploads_dir": "/var/lib/community/uploads"
		},
		"server": {
			"http_address": ":9000",
			"request_timeout": "15s"
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "from-json", cfg.App.SessionSignKey)
	assert.Equal(t, 45*time.Minute, cfg.App.SessionTTL)
	assert.Equal(t, 12, cfg.App.BcryptCost)
	assert.Equal(t, "/var/lib/community/users.csv", cfg.Storage.UsersFile)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}
