package config

import (
	"errors"
)

var (
	// ErrWebServerPortOutOfRange error if config webserver listening port is not a valid tcp port.
	ErrWebServerPortOutOfRange = errors.New("toml config webserver.port must be between 1 and 65535")

	// ErrEmptyAdminToken error if no admin shared secret was configured.
	ErrEmptyAdminToken = errors.New("admin token can not be empty (set admin.token or ADMIN_TOKEN)")

	// ErrEmptyUploadDir error if config upload.dir is empty.
	ErrEmptyUploadDir = errors.New("toml config upload.dir can not be empty")

	// ErrUnsupportedEngine error if config db.gormEngine names an unknown database engine.
	ErrUnsupportedEngine = errors.New("toml config db.gormEngine must be one of sqlite, mysql, postgres")

	// ErrInvalidPortEnv error if the PORT environment variable is not a number.
	ErrInvalidPortEnv = errors.New("invalid PORT env variable")
)
