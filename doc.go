// Package main provides the entry point of storerate, a web service where
// administrators register stores and users rate them. Stores and ratings are
// kept with gorm in sqlite, mysql or postgres, the HTTP API is served by fiber
// and uploaded store images are served from the upload directory.
package main
