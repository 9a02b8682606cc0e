package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/recruitkit/resumedex/internal/usecase/ingest"
)

// resumeReader streams resume rows out of a CSV file. The file must
// carry a header naming an id column, a category column, and a body
// column ("resume_str" in the source dataset, "body" also accepted).
type resumeReader struct {
	csv      *csv.Reader
	id       int
	category int
	body     int
}

func newResumeReader(r io.Reader) (*resumeReader, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	rr := &resumeReader{csv: cr, id: -1, category: -1, body: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			rr.id = i
		case "category":
			rr.category = i
		case "resume_str", "body":
			rr.body = i
		}
	}
	if rr.id < 0 || rr.category < 0 || rr.body < 0 {
		return nil, fmt.Errorf("csv header missing id/category/body columns: %v", header)
	}
	return rr, nil
}

// Next returns the next resume row. io.EOF signals a clean end of file.
func (r *resumeReader) Next() (ingest.Document, error) {
	record, err := r.csv.Read()
	if err != nil {
		return ingest.Document{}, err
	}

	id, err := strconv.Atoi(strings.TrimSpace(record[r.id]))
	if err != nil {
		return ingest.Document{}, fmt.Errorf("parse resume id %q: %w", record[r.id], err)
	}

	return ingest.Document{
		ID:       id,
		Category: record[r.category],
		Body:     record[r.body],
	}, nil
}
