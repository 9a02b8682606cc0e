package domain

import "strconv"

// KeyPrefix namespaces all resumedex keys in the store.
const KeyPrefix = "resumedex:"

// IndexName is the FT index covering all stored resumes.
const IndexName = KeyPrefix + "resumes:idx"

// ResumeKeyPrefix prefixes every resume hash key.
const ResumeKeyPrefix = KeyPrefix + "resume:"

// DefaultDimensions is the embedding dimensionality used process-wide.
// Stored vectors and query vectors must both have exactly this size.
const DefaultDimensions = 256

// Resume is an indexed resume record. All fields are immutable after
// ingestion; the embedding is set exactly once and never mutated.
type Resume struct {
	ID       int
	Category string
	Body     string
	Vector   []float32
}

// Key returns the store key for the resume.
func (r *Resume) Key() string {
	return ResumeKey(r.ID)
}

// ResumeKey builds the store key for a resume ID.
func ResumeKey(id int) string {
	return ResumeKeyPrefix + strconv.Itoa(id)
}
