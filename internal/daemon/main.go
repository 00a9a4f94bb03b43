// Package daemon wires the database, the upload directory and the web service
// into one running process.
package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	db         *gorm.DB
}

// Start runs the web service until SIGINT or SIGTERM, then shuts it down
// and closes the database.
func (d *Daemon) Start() error {
	errc := make(chan error, 1)

	go func() {
		errc <- d.webService.Start()
	}()

	d.webService.WaitShutdown()

	err := <-errc

	if cerr := d.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

// Close closes the database pool.
func (d *Daemon) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql db")
	}

	if err = sqlDB.Close(); err != nil {
		return errors.Wrap(err, "failed to close database")
	}

	log.Info().Msg("database closed")

	return nil
}

// Web is the web service of the daemon.
func (d *Daemon) Web() *web.Service {
	return d.webService
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	return newWithFs(cfg, afero.NewOsFs())
}

func newWithFs(cfg *config.Config, fsys afero.Fs) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Str("upload_dir", cfg.Upload.Dir).
		Int("port", cfg.Webserver.Port).
		Msg("database ready")

	return &Daemon{
		webService: web.New(cfg, db, fsys),
		db:         db,
	}, nil
}
