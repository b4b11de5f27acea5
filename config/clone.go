// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copies of decoded TOML documents.

package config

// Clone copies cfg so that edits to the copy, including nested tables and
// arrays, never reach cfg. Tables come back as Section values.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, value := range cfg {
		out[name] = cloneValue(value)
	}
	return out
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case Section:
		return cloneTable(v)
	case map[string]interface{}:
		return cloneTable(v)
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, t := range v {
			out[i] = cloneTable(t)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneTable(t map[string]interface{}) Section {
	out := make(Section, len(t))
	for key, value := range t {
		out[key] = cloneValue(value)
	}
	return out
}
