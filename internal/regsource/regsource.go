// Package regsource models the Windows registry as an injected read-only
// data source, so inventory code can be tested against an in-memory fake.
package regsource

// Source is a read-only view of the local-machine registry hive.
type Source interface {
	// SubKeyNames returns the names of the immediate subkeys of path, in
	// the order the underlying enumeration yields them (typically creation
	// order, not sorted).
	SubKeyNames(path string) ([]string, error)

	// StringValues reads the named string values of path\subKey. Values
	// that are absent or not readable as strings are omitted from the
	// returned map; an error is returned only when the subkey itself
	// cannot be opened.
	StringValues(path, subKey string, names []string) (map[string]string, error)
}
