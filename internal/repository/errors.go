// Package repository contains the data access layer: one repository per
// entity over a shared *sql.DB, plus sentinel errors that let handlers
// distinguish failure scenarios without parsing driver messages.
// Multi-step mutations (composite creates, cascading deletes, ticket
// purchases) run inside transactions so partial state cannot persist.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an INSERT or UPDATE loses against a
// unique key. Application-level checks normally catch duplicates first
// with a friendly message; this sentinel surfaces only when two requests
// race and the store constraint is the final backstop. Handlers map it
// to HTTP 409.
var ErrDuplicate = errors.New("duplicate entry")

// duplicateOr converts MySQL error 1062 (duplicate key) into
// ErrDuplicate and passes every other error through unchanged.
func duplicateOr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicate
	}
	return err
}
