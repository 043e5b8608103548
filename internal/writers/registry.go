package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Kind names a payload family.
type Kind string

const (
	Strands   Kind = "strands"   // api.StrandsV1
	Thermo    Kind = "thermo"    // []api.ThermoV1
	Structure Kind = "structure" // []api.StructureV1
	Search    Kind = "search"    // api.SearchV1
	Project   Kind = "project"   // api.ProjectV1
	Projects  Kind = "projects"  // []api.ProjectSummaryV1
	Check     Kind = "check"     // api.CheckV1
)

// ErrUnknownFormat is returned by Write when nothing is registered for the
// requested (kind, format).
var ErrUnknownFormat = errors.New("no writer registered")

// WriteFunc renders one payload.
type WriteFunc func(w io.Writer, payload any) error

// Writer registries (kind → format → handler).
// Register in init() blocks from the text/json writer files.
var registry = map[Kind]map[string]WriteFunc{}

// Register installs fn for (kind, format); last registration wins.
func Register(kind Kind, format string, fn WriteFunc) {
	m := registry[kind]
	if m == nil {
		m = map[string]WriteFunc{}
		registry[kind] = m
	}
	m[format] = fn
}

// Write dispatches payload to the writer registered for (kind, format).
func Write(kind Kind, format string, w io.Writer, payload any) error {
	fn, ok := registry[kind][format]
	if !ok {
		return fmt.Errorf("unknown %s format %q: %w", kind, format, ErrUnknownFormat)
	}
	return fn(w, payload)
}

// Formats lists the formats registered for kind, sorted.
func Formats(kind Kind) []string {
	var out []string
	for f := range registry[kind] {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func badPayload(kind Kind, format string, payload any) error {
	return fmt.Errorf("%s %s writer: unexpected payload %T", kind, format, payload)
}
