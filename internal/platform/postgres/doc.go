// Package postgres provides PostgreSQL implementations of the store
// interfaces using the database/sql API with the pgx driver.
package postgres
