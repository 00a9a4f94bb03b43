// Package config handles input from etc/*.toml files, .env files and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// JSONConfigEnvName is the env var holding a JSON document merged over the toml config.
	JSONConfigEnvName = "STORE_RATING_CONFIG_JSON"

	defaultPort         = 3000
	defaultShutDownTime = 5
	defaultUploadPath   = "/uploads"
)

// envBindings maps config keys to the environment variables overriding them.
var envBindings = map[string]string{
	"admin.token": "ADMIN_TOKEN",
	"port":        "PORT",
	"db.url":      "DATABASE_URL",
	"db.engine":   "DATABASE_ENGINE",
	"upload.dir":  "UPLOAD_DIR",
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(JSONConfigEnvName)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if err = loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	if err = applyEnv(&c); err != nil {
		return Config{}, err
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// loadDotEnv exports the variables of an optional .env file.
// Variables already present in the environment are left untouched.
func loadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return errors.Wrapf(err, "failed to read %s", filename)
}

// applyEnv overrides the settings listed in envBindings from the environment.
func applyEnv(c *Config) error {
	v := viper.New()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return errors.Wrapf(err, "failed to bind env %s", env)
		}
	}

	if token := v.GetString("admin.token"); token != "" {
		c.Admin.Token = token
	}

	if port := v.GetString("port"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.Wrap(ErrInvalidPortEnv, err.Error())
		}

		c.Webserver.Port = p
	}

	if url := v.GetString("db.url"); url != "" {
		c.DB.URL = url
	}

	if engine := v.GetString("db.engine"); engine != "" {
		c.DB.GormEngine = engine
	}

	if dir := v.GetString("upload.dir"); dir != "" {
		c.Upload.Dir = dir
	}

	return nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate the config and fill in defaults for optional settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		c.Webserver.Port = defaultPort
	}

	if c.Webserver.Port < 0 || c.Webserver.Port > 65535 {
		return errors.Wrap(ErrWebServerPortOutOfRange, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Admin.Token == "" {
		return errors.Wrap(ErrEmptyAdminToken, invalidErrMessage)
	}

	if c.Upload.Dir == "" {
		return errors.Wrap(ErrEmptyUploadDir, invalidErrMessage)
	}

	if c.Upload.PublicPath == "" {
		c.Upload.PublicPath = defaultUploadPath
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = EngineSQLite
	}

	switch c.DB.GormEngine {
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return errors.Wrap(ErrUnsupportedEngine, invalidErrMessage)
	}

	return nil
}
