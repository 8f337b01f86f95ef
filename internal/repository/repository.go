// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL logic away from the service layer.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a query expecting one row finds none.
// Services translate it into a 404 for the client.
var ErrNotFound = errors.New("record not found")

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
