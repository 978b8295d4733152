// Package convert translates between the wire schema in pkg/wire and the
// domain model in pkg/model.
//
// Conversions are pure and stateless: they copy every field, never alias
// maps or slices between the two forms, and either convert an entity
// completely or fail with a structural error. Outbound task and event
// conversions consult a logstore.Provider for log locations; nothing else
// reaches outside the two packages.
package convert

import "go.uber.org/zap"

var log = zap.NewNop()

// SetLogger routes schema-drift warnings emitted by this package, such as a
// status enum falling back to UNRECOGNIZED. Passing nil restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}

// cloneMap copies m for the domain form; empty maps become nil.
func cloneMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// cloneStrings copies s for the domain form; empty lists become nil.
func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// wireMap copies m for the wire form, which always carries a map.
func wireMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// wireStrings copies s for the wire form, which always carries a list.
func wireStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func strPtr(s string) *string {
	return &s
}
