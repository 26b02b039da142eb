// Package database provides connection pool management for PostgreSQL.
//
// The pipeline keeps a single pool for the signals table; reference data is
// in-memory and never touches the database.
package database
