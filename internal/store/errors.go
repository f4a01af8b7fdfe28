// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"dagcategory/internal/hierarchy"
)

// PostgreSQL SQLSTATE codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver constraint errors onto hierarchy sentinels so
// callers do not depend on the database in use. Other errors pass through.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, hierarchy.ErrDuplicatePath)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, foreignKeyErr(op))
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if sentinel := sqliteConstraint(op, liteErr.Code(), liteErr.Error()); sentinel != nil {
			return fmt.Errorf("%s: %w", op, sentinel)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// sqliteConstraint classifies a SQLite result code. Extended constraint
// codes vary by how the check fired (ON DELETE RESTRICT reports
// SQLITE_CONSTRAINT_TRIGGER), so any code whose primary part is
// SQLITE_CONSTRAINT falls back to the message. Nil means not a constraint
// error this package maps.
func sqliteConstraint(op string, code int, msg string) error {
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return hierarchy.ErrDuplicatePath
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return foreignKeyErr(op)
	}
	switch {
	case strings.Contains(msg, "UNIQUE"):
		return hierarchy.ErrDuplicatePath
	case strings.Contains(msg, "FOREIGN KEY"):
		return foreignKeyErr(op)
	}
	return nil
}

// foreignKeyErr picks the sentinel for a foreign key failure: on delete the
// row is still referenced by children, otherwise the parent is missing.
func foreignKeyErr(op string) error {
	if op == opDelete {
		return hierarchy.ErrHasChildren
	}
	return hierarchy.ErrParentNotFound
}
