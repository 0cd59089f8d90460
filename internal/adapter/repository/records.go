// Package repository implements the record store against Redis. Every
// record is one hash keyed "<table>:<id>"; list queries go through a
// per-call (or per-agent) sorted set scored by creation time, newest first.
package repository

import (
	"encoding/json"
	"time"
)

// recordKey is the hash key of a single record.
func recordKey(table, id string) string {
	return table + ":" + id
}

// indexKey is the sorted-set key of a secondary index, e.g.
// "summaries:call:call-123".
func indexKey(table, field, value string) string {
	return table + ":" + field + ":" + value
}

// formatTime renders a creation timestamp in its stored form. RFC3339Nano
// sorts lexicographically within a single process's clock precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// marshalMeta encodes free-form metadata as a single JSON hash field.
func marshalMeta(meta map[string]string) string {
	if len(meta) == 0 {
		return "{}"
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func unmarshalMeta(s string) map[string]string {
	if s == "" || s == "{}" {
		return nil
	}
	var meta map[string]string
	if err := json.Unmarshal([]byte(s), &meta); err != nil {
		return nil
	}
	return meta
}
