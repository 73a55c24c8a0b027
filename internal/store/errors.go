package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/startlist/internal/model"
)

// classify wraps uniqueness violations around model.ErrConflict so callers
// can tell a data conflict from an I/O failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", model.ErrConflict, err)
		}
	}
	return err
}
