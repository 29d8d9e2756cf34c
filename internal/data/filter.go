package data

import (
	"slices"
	"sort"
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

// Filter is one active column filter.
type Filter struct {
	Key   string
	Value string
}

// String returns the "key:value" wire form.
func (f Filter) String() string { return f.Key + ":" + f.Value }

// ParseFilter splits "key:value". The value keeps any further colons. Both
// halves must be non-empty.
func ParseFilter(s string) (Filter, bool) {
	key, value, ok := strings.Cut(s, ":")
	if !ok || key == "" || value == "" {
		return Filter{}, false
	}
	return Filter{Key: key, Value: value}, true
}

// FilterStrings converts filters to their wire form.
func FilterStrings(fs []Filter) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

// ToggleFilter removes the filter when present, appends it otherwise. The
// input slice is not modified.
func ToggleFilter(fs []Filter, key, value string) []Filter {
	f := Filter{Key: key, Value: value}
	if slices.Contains(fs, f) {
		return RemoveFilter(fs, f)
	}
	return append(slices.Clip(fs), f)
}

// RemoveFilter returns fs without f.
func RemoveFilter(fs []Filter, f Filter) []Filter {
	out := make([]Filter, 0, len(fs))
	for _, x := range fs {
		if x != f {
			out = append(out, x)
		}
	}
	return out
}

// FilterGroup is the set of accepted values for one column.
type FilterGroup struct {
	Key    string
	Values []string
}

// GroupFilters parses raw filters and groups their values per column, in
// order of first appearance. Malformed entries and unknown columns are
// dropped.
func GroupFilters(raw []string) []FilterGroup {
	var groups []FilterGroup
	index := make(map[string]int)
	for _, s := range raw {
		f, ok := ParseFilter(s)
		if !ok || !IsColumn(f.Key) {
			continue
		}
		i, seen := index[f.Key]
		if !seen {
			i = len(groups)
			index[f.Key] = i
			groups = append(groups, FilterGroup{Key: f.Key})
		}
		if !slices.Contains(groups[i].Values, f.Value) {
			groups[i].Values = append(groups[i].Values, f.Value)
		}
	}
	return groups
}

// UniqueValues returns the distinct non-empty values of a column, sorted.
func UniqueValues(rows grid.Rows, key string) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if v := r.Get(key); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
