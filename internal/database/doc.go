// Package database provides connection pool management for the catalog
// database.
//
// One pool is acquired per target database for the duration of a run and
// released on every exit path. Post-processing may target a different
// database than the catalog, so the connect path takes the database name
// explicitly.
package database
