package resume

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/recruitkit/resumedex/internal/domain"
)

// Hash field names of a stored resume. The embedding is a binary blob
// so the FT VECTOR field can index it in place.
const (
	fieldID        = "id"
	fieldCategory  = "category"
	fieldBody      = "body"
	fieldEmbedding = "embedding"
)

// buildHashFields converts a domain Resume into a flat map[string]string for HSET.
func buildHashFields(r *domain.Resume) map[string]string {
	return map[string]string{
		fieldID:        strconv.Itoa(r.ID),
		fieldCategory:  r.Category,
		fieldBody:      r.Body,
		fieldEmbedding: vectorToBytes(r.Vector),
	}
}

// parseHashFields converts a flat hash map back into a domain Resume.
func parseHashFields(id int, m map[string]string) domain.Resume {
	return domain.Resume{
		ID:       id,
		Category: m[fieldCategory],
		Body:     m[fieldBody],
		Vector:   bytesToVector(m[fieldEmbedding]),
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
