// Package inventory answers installed-application queries by reading the
// machine-wide uninstall registry roots through an injected regsource.Source.
package inventory

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/appinv/appinv/internal/logging"
	"github.com/appinv/appinv/internal/regsource"
)

// Uninstall roots under HKEY_LOCAL_MACHINE, scanned in order.
var uninstallRoots = []string{
	// 64-bit applications
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	// 32-bit applications on 64-bit Windows
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// Named values read from each uninstall subkey.
var recordValueNames = []string{
	"DisplayName",
	"UninstallString",
	"InstallLocation",
	"DisplayVersion",
	"Publisher",
}

// ApplicationRecord is one entry found under an uninstall root. Fields other
// than ProductCode and RegistryPath are empty when the installer did not
// record them. ProductCode is the subkey name itself: a GUID for
// MSI-installed software, an arbitrary string for everything else.
type ApplicationRecord struct {
	DisplayName     string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	UninstallString string `json:"uninstallString,omitempty" yaml:"uninstallString,omitempty"`
	InstallLocation string `json:"installLocation,omitempty" yaml:"installLocation,omitempty"`
	DisplayVersion  string `json:"displayVersion,omitempty" yaml:"displayVersion,omitempty"`
	Publisher       string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	ProductCode     string `json:"productCode" yaml:"productCode"`
	RegistryPath    string `json:"registryPath" yaml:"registryPath"`
}

// MatchMode selects how FindApplications compares the identifier.
type MatchMode int

const (
	// MatchName treats the identifier as a case-insensitive substring of
	// DisplayName.
	MatchName MatchMode = iota
	// MatchProductCode requires an exact ProductCode match. Comparison is
	// case-insensitive, like registry key names.
	MatchProductCode
)

// ParseMatchMode maps a CLI/user spelling to a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return MatchName, nil
	case "product", "product-code", "productcode", "guid":
		return MatchProductCode, nil
	}
	return MatchName, errors.New(`match mode must be "name" or "product"`)
}

// ErrEmptyIdentifier is returned by lookups given an empty identifier,
// before any registry access happens.
var ErrEmptyIdentifier = errors.New("identifier must not be empty")

const defaultPlaceholder = "N/A"

// Service is a stateless query front end over a registry source. Every call
// re-reads the registry; there is no caching, so results always reflect the
// live state at call time.
type Service struct {
	src         regsource.Source
	log         *slog.Logger
	placeholder string
}

// New creates a Service over the given registry source.
func New(src regsource.Source) *Service {
	return &Service{
		src:         src,
		log:         logging.L("inventory"),
		placeholder: defaultPlaceholder,
	}
}

// SetPlaceholder overrides the text the detail report shows for fields the
// installer did not record. Empty input keeps the current placeholder.
func (s *Service) SetPlaceholder(text string) {
	if text != "" {
		s.placeholder = text
	}
}

// ListInstalledApplications enumerates both uninstall roots and returns one
// record per readable subkey, first root fully before the second, in
// enumeration order. Unreadable roots and subkeys are skipped: one bad entry
// must never abort the whole inventory.
func (s *Service) ListInstalledApplications() ([]ApplicationRecord, error) {
	var records []ApplicationRecord

	for _, root := range uninstallRoots {
		subKeys, err := s.src.SubKeyNames(root)
		if err != nil {
			// Roots can be absent (no WOW6432Node on 32-bit Windows) or
			// unreadable.
			s.log.Debug("skipping uninstall root", "root", root, logging.KeyError, err)
			continue
		}

		for _, name := range subKeys {
			values, err := s.src.StringValues(root, name, recordValueNames)
			if err != nil {
				s.log.Debug("skipping unreadable subkey", "root", root, "subKey", name, logging.KeyError, err)
				continue
			}

			rec := ApplicationRecord{
				DisplayName:     values["DisplayName"],
				UninstallString: values["UninstallString"],
				InstallLocation: values["InstallLocation"],
				DisplayVersion:  values["DisplayVersion"],
				Publisher:       values["Publisher"],
				ProductCode:     name,
				RegistryPath:    root + `\` + name,
			}
			if rec.DisplayName == "" && rec.ProductCode == "" {
				continue
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// FindApplications returns the inventory records matching identifier under
// the given mode, preserving inventory order. No match is not an error; the
// result is simply empty.
func (s *Service) FindApplications(identifier string, mode MatchMode) ([]ApplicationRecord, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, ErrEmptyIdentifier
	}

	records, err := s.ListInstalledApplications()
	if err != nil {
		return nil, err
	}

	var matches []ApplicationRecord
	for _, rec := range records {
		if matchRecord(rec, identifier, mode) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func matchRecord(rec ApplicationRecord, identifier string, mode MatchMode) bool {
	if mode == MatchProductCode {
		return strings.EqualFold(rec.ProductCode, identifier)
	}
	if rec.DisplayName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(rec.DisplayName), strings.ToLower(identifier))
}

// UninstallStrings returns the uninstall command line of every match, one
// element per match. A match without a recorded UninstallString contributes
// an empty string.
func (s *Service) UninstallStrings(identifier string, mode MatchMode) ([]string, error) {
	return s.fieldOf(identifier, mode, func(r ApplicationRecord) string { return r.UninstallString })
}

// DisplayVersions returns the display version of every match, one element
// per match.
func (s *Service) DisplayVersions(identifier string, mode MatchMode) ([]string, error) {
	return s.fieldOf(identifier, mode, func(r ApplicationRecord) string { return r.DisplayVersion })
}

func (s *Service) fieldOf(identifier string, mode MatchMode, field func(ApplicationRecord) string) ([]string, error) {
	matches, err := s.FindApplications(identifier, mode)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, field(m))
	}
	return out, nil
}
