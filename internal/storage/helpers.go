package storage

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

func newID() string { return uuid.New().String() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// strToNull maps the empty string to SQL NULL.
func strToNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// rawToNull maps an absent JSON payload to SQL NULL.
func rawToNull(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
