package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// cursor records how many data rows have been ingested so a crashed or
// interrupted run can pick up where it left off.
type cursor struct {
	Offset int `json:"offset"`
}

func loadCursor(path string) (cursor, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cursor{}, nil
	}
	if err != nil {
		return cursor{}, fmt.Errorf("read cursor %s: %w", path, err)
	}

	var c cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return cursor{}, fmt.Errorf("parse cursor %s: %w", path, err)
	}
	return c, nil
}

// saveCursor writes the cursor atomically via a temp file rename so a
// crash mid-write never corrupts the checkpoint.
func saveCursor(path string, c cursor) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cursor %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit cursor %s: %w", path, err)
	}
	return nil
}
