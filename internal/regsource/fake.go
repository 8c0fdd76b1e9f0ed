package regsource

import "fmt"

// Fake is an in-memory Source for tests. Subkey order is preserved exactly
// as seeded.
type Fake struct {
	// SubKeys maps a root path to its subkey names, in enumeration order.
	SubKeys map[string][]string
	// Values maps `root\subkey` to that subkey's named string values.
	Values map[string]map[string]string
	// Unreadable marks `root\subkey` entries whose values cannot be read,
	// as if access were denied.
	Unreadable map[string]bool
	// MissingRoots marks root paths that fail to enumerate entirely.
	MissingRoots map[string]bool
}

func (f *Fake) SubKeyNames(path string) ([]string, error) {
	if f.MissingRoots[path] {
		return nil, fmt.Errorf("fake: cannot open %s", path)
	}
	return f.SubKeys[path], nil
}

func (f *Fake) StringValues(path, subKey string, names []string) (map[string]string, error) {
	full := path + `\` + subKey
	if f.Unreadable[full] {
		return nil, fmt.Errorf("fake: access denied to %s", full)
	}

	seeded := f.Values[full]
	values := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := seeded[name]; ok {
			values[name] = v
		}
	}
	return values, nil
}
