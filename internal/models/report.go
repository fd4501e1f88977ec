package models

import (
	"bytes"
	"encoding/json"
)

// TypeStatistics counts the value nodes of each kind seen in one document.
// TotalValues equals the sum of the six per-kind counters.
type TypeStatistics struct {
	Strings     int `json:"strings"`
	Numbers     int `json:"numbers"`
	Booleans    int `json:"booleans"`
	Nulls       int `json:"nulls"`
	Objects     int `json:"objects"`
	Arrays      int `json:"arrays"`
	TotalValues int `json:"total_values"`
}

// DuplicateRecord reports one repeated object key. Path addresses the object
// containing the repeat: "root" for the document root, ".key" appended per
// object descent, "[i]" per array descent (e.g. "root.items[1]").
type DuplicateRecord struct {
	Path string `json:"path"`
	Key  string `json:"key"`
}

// KeyedSummary pairs an object key with the summary of its value, keeping
// the key order of the underlying Object.
type KeyedSummary struct {
	Key     string
	Summary *StructureSummary
}

// StructureSummary describes the inferred shape of one Value node.
//
// For summaries produced by the analyzer, Keys is non-nil exactly when Type
// is object (empty slice for {}) and ElementTypes is non-nil exactly when
// Type is array (empty slice for []); both are nil in the minimal degraded
// summaries attached to non-uniform arrays, which render as bare
// {type, is_empty}. ElementSummary is set only for arrays: the shared shape
// when all elements are structurally equal, a minimal summary when the
// elements share a base type but differ in shape, and nil when element
// types are mixed (or the array is empty).
type StructureSummary struct {
	Type           Kind
	IsEmpty        bool
	Keys           []KeyedSummary
	ElementTypes   []Kind
	ElementSummary *StructureSummary
}

// MarshalJSON renders the summary with object keys in display order and the
// object-only/array-only field groups present exactly when populated, which
// the generic map-based encoder cannot guarantee.
func (s *StructureSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSON(&buf, string(s.Type)); err != nil {
		return nil, err
	}
	buf.WriteString(`,"is_empty":`)
	if s.IsEmpty {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	switch {
	case s.Keys != nil:
		buf.WriteString(`,"keys":{`)
		for i, ks := range s.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(&buf, ks.Key); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSON(&buf, ks.Summary); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	case s.ElementTypes != nil:
		buf.WriteString(`,"element_types":[`)
		for i, t := range s.ElementTypes {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(&buf, string(t)); err != nil {
				return nil, err
			}
		}
		buf.WriteByte(']')
		if s.ElementSummary != nil {
			buf.WriteString(`,"element_summary":`)
			if err := writeJSON(&buf, s.ElementSummary); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// KeySummary returns the summary mapped to key, or nil when absent. Used by
// the key-order-insensitive equality below and by tests.
func (s *StructureSummary) KeySummary(key string) *StructureSummary {
	for _, ks := range s.Keys {
		if ks.Key == key {
			return ks.Summary
		}
	}
	return nil
}

// Equal reports structural equality of two summaries. Object keys are
// compared as sets (display order is ignored); scalar values never
// participate, only shapes. This is the comparison the array-uniformity
// test is built on.
func (s *StructureSummary) Equal(other *StructureSummary) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Type != other.Type || s.IsEmpty != other.IsEmpty {
		return false
	}
	switch s.Type {
	case KindObject:
		if len(s.Keys) != len(other.Keys) {
			return false
		}
		for _, ks := range s.Keys {
			theirs := other.KeySummary(ks.Key)
			if theirs == nil || !ks.Summary.Equal(theirs) {
				return false
			}
		}
	case KindArray:
		if len(s.ElementTypes) != len(other.ElementTypes) {
			return false
		}
		for i, t := range s.ElementTypes {
			if other.ElementTypes[i] != t {
				return false
			}
		}
		if (s.ElementSummary == nil) != (other.ElementSummary == nil) {
			return false
		}
		if s.ElementSummary != nil && !s.ElementSummary.Equal(other.ElementSummary) {
			return false
		}
	}
	return true
}

// Report is the final analysis result handed to rendering. On success all
// fields except AnalysisError are populated (DuplicateKeys only when
// non-empty); on failure only Filepath and AnalysisError survive.
type Report struct {
	Filepath      string            `json:"filepath,omitempty"`
	FileSizeBytes *int64            `json:"file_size_bytes,omitempty"`
	RootType      Kind              `json:"root_type,omitempty"`
	MaxDepth      *int              `json:"max_depth,omitempty"`
	Statistics    *TypeStatistics   `json:"statistics,omitempty"`
	Structure     *StructureSummary `json:"structure,omitempty"`
	DuplicateKeys []DuplicateRecord `json:"duplicate_keys,omitempty"`
	AnalysisError string            `json:"analysis_error,omitempty"`
}
