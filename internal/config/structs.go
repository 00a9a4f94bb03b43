package config

import (
	"github.com/GoStoreRating/GoStoreRating/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Admin     Admin
	Upload    Upload
	Webserver Webserver
}

// Admin holds the shared secret that guards store creation.
type Admin struct {
	Token string
}

// Upload implements settings for the store image uploads.
type Upload struct {
	Dir        string // directory the images are written to
	PublicPath string // url prefix the directory is served under
}

// Webserver implement webserver settings.
type Webserver struct {
	BodyLimit      int    // max request body size in bytes, 0 = fiber default (4MB)
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	FastShutDown   bool   // skip the check alive drain on shutdown
	AllowOrigins   string // cors allowed origins
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
}
