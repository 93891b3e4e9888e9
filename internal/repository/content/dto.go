package content

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/linkvault/linkvault/internal/domain"
)

// tagSeparator joins tag ids inside the hash field.
const tagSeparator = ","

// buildHashFields converts a ContentRecord into a flat map for HSET.
// The vector field holds float32 little-endian bytes, the format the FT
// index expects.
func buildHashFields(rec *domain.ContentRecord) map[string]string {
	m := map[string]string{
		"title": rec.Title,
		"type":  string(rec.Type),
		"link":  rec.Link,
		"owner": rec.OwnerID,
	}
	if rec.PreviewHTML != "" {
		m["preview"] = rec.PreviewHTML
	}
	if len(rec.TagIDs) > 0 {
		m["tags"] = strings.Join(rec.TagIDs, tagSeparator)
	}
	if len(rec.Embedding) > 0 {
		m["vector"] = vectorToBytes(rec.Embedding)
	}
	return m
}

// parseHashFields converts a flat hash map back into a ContentRecord.
func parseHashFields(id string, m map[string]string) domain.ContentRecord {
	rec := domain.ContentRecord{
		ID:          id,
		Title:       m["title"],
		Type:        domain.ContentType(m["type"]),
		Link:        m["link"],
		OwnerID:     m["owner"],
		PreviewHTML: m["preview"],
	}
	if tags := m["tags"]; tags != "" {
		rec.TagIDs = strings.Split(tags, tagSeparator)
	}
	if vec := m["vector"]; vec != "" {
		rec.Embedding = bytesToVector(vec)
	}
	return rec
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
