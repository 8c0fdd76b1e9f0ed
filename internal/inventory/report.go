package inventory

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const separatorWidth = 60

// WriteDetails runs FindApplications and writes a labeled block per match.
// Zero matches produce a single notice and no blocks.
func (s *Service) WriteDetails(w io.Writer, identifier string, mode MatchMode) error {
	matches, err := s.FindApplications(identifier, mode)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintf(w, "No applications found matching %q\n", identifier)
		return nil
	}

	for _, rec := range matches {
		fmt.Fprintf(w, "Application Name: %s\n", s.orPlaceholder(rec.DisplayName))
		fmt.Fprintf(w, "Uninstall String: %s\n", s.orPlaceholder(rec.UninstallString))
		fmt.Fprintf(w, "Install Location: %s\n", s.orPlaceholder(rec.InstallLocation))
		fmt.Fprintf(w, "Display Version: %s\n", s.orPlaceholder(rec.DisplayVersion))
		fmt.Fprintf(w, "Publisher: %s\n", s.orPlaceholder(rec.Publisher))
		fmt.Fprintf(w, "Product Code: %s\n", rec.ProductCode)
		fmt.Fprintf(w, "Registry Path: %s\n", rec.RegistryPath)
		fmt.Fprintln(w, strings.Repeat("-", separatorWidth))
	}
	return nil
}

// PrintApplicationDetails writes the detail report to standard output.
func (s *Service) PrintApplicationDetails(identifier string, mode MatchMode) error {
	return s.WriteDetails(os.Stdout, identifier, mode)
}

func (s *Service) orPlaceholder(value string) string {
	if value == "" {
		return s.placeholder
	}
	return value
}
