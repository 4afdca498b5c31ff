package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Names of the fields that participate in field-level diffing. The set is
// fixed: status, title, content. ChangeSet entries never carry any other
// field name.
const (
	FieldStatus  = "status"
	FieldTitle   = "title"
	FieldContent = "content"
)

// ComparedFields is the canonical ordering of diffable fields. The differ
// emits changes in this order, which keeps reports and serialized change
// sets deterministic.
var ComparedFields = []string{FieldStatus, FieldTitle, FieldContent}

// FieldChange is a single field-level difference between two issue views.
// Old and New flow as structured values from detection to application;
// they are never round-tripped through a concatenated display string.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ChangeSet is an ordered collection of field changes. The zero value is an
// empty, usable change set.
type ChangeSet []FieldChange

// Empty reports whether the change set contains no changes.
func (c ChangeSet) Empty() bool {
	return len(c) == 0
}

// Get returns the change recorded for field, if any.
func (c ChangeSet) Get(field string) (FieldChange, bool) {
	for _, fc := range c {
		if fc.Field == field {
			return fc, true
		}
	}
	return FieldChange{}, false
}

// Fields returns the changed field names in change-set order.
func (c ChangeSet) Fields() []string {
	names := make([]string, 0, len(c))
	for _, fc := range c {
		names = append(names, fc.Field)
	}
	return names
}

// MarshalJSON serializes the change set as an object keyed by field name,
// each value carrying the old and new values as a structured pair:
//
//	{"status": {"old": "todo", "new": "closed"}}
//
// Keys are emitted in change-set order.
func (c ChangeSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fc := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fc.Field)
		if err != nil {
			return nil, err
		}
		pair, err := json.Marshal(struct {
			Old string `json:"old"`
			New string `json:"new"`
		}{fc.Old, fc.New})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(pair)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the object form produced by MarshalJSON. Entries are
// reordered into the canonical ComparedFields order; unknown field names are
// rejected so that malformed stored metadata surfaces as an error instead of
// silently flowing into an apply step.
func (c *ChangeSet) UnmarshalJSON(data []byte) error {
	var raw map[string]struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ChangeSet, 0, len(raw))
	for _, field := range ComparedFields {
		if pair, ok := raw[field]; ok {
			out = append(out, FieldChange{Field: field, Old: pair.Old, New: pair.New})
			delete(raw, field)
		}
	}
	for field := range raw {
		return fmt.Errorf("unknown change set field %q", field)
	}

	*c = out
	return nil
}
