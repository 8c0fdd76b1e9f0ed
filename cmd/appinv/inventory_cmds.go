package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/appinv/appinv/internal/config"
	"github.com/appinv/appinv/internal/inventory"
	"github.com/appinv/appinv/internal/sysinfo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every installed application",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := newService()

		records, err := svc.ListInstalledApplications()
		if err != nil {
			fail("Failed to read inventory: %v", err)
		}

		var host *sysinfo.Summary
		if withHost {
			host = sysinfo.Collect()
		}

		if err := writeRecords(os.Stdout, cfg, records, host); err != nil {
			fail("Failed to write output: %v", err)
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [identifier]",
	Short: "Find applications by name or product code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := newService()

		matches, err := svc.FindApplications(args[0], parseMode())
		if err != nil {
			fail("%v", err)
		}
		if len(matches) == 0 && !structuredOutput(cfg) {
			fmt.Printf("No applications found matching %q\n", args[0])
			return
		}

		if err := writeRecords(os.Stdout, cfg, matches, nil); err != nil {
			fail("Failed to write output: %v", err)
		}
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details [identifier]",
	Short: "Print a labeled detail block for every match",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := newService()

		if err := svc.PrintApplicationDetails(args[0], parseMode()); err != nil {
			fail("%v", err)
		}
	},
}

var uninstallStringCmd = &cobra.Command{
	Use:   "uninstall-string [identifier]",
	Short: "Print the uninstall command line of every match",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := newService()

		values, err := svc.UninstallStrings(args[0], parseMode())
		if err != nil {
			fail("%v", err)
		}
		printFieldValues(args[0], values, cfg)
	},
}

var displayVersionCmd = &cobra.Command{
	Use:   "display-version [identifier]",
	Short: "Print the display version of every match",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := newService()

		values, err := svc.DisplayVersions(args[0], parseMode())
		if err != nil {
			fail("%v", err)
		}
		printFieldValues(args[0], values, cfg)
	},
}

func init() {
	listCmd.Flags().BoolVar(&withHost, "with-host", false, "include a host summary header")

	for _, cmd := range []*cobra.Command{searchCmd, detailsCmd, uninstallStringCmd, displayVersionCmd} {
		cmd.Flags().StringVar(&matchBy, "by", "name", "match mode: name (substring) or product (exact product code)")
	}
}

// listPayload is the structured output shape for json/yaml.
type listPayload struct {
	Host         *sysinfo.Summary              `json:"host,omitempty" yaml:"host,omitempty"`
	Count        int                           `json:"count" yaml:"count"`
	Applications []inventory.ApplicationRecord `json:"applications" yaml:"applications"`
}

func writeRecords(w io.Writer, cfg *config.Config, records []inventory.ApplicationRecord, host *sysinfo.Summary) error {
	payload := listPayload{Host: host, Count: len(records), Applications: records}

	switch strings.ToLower(cfg.Output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(payload)
	default:
		if host != nil {
			fmt.Fprintf(w, "Host: %s (%s %s, %s)\n\n", host.Hostname, host.OSType, host.OSVersion, host.Architecture)
		}
		for _, rec := range records {
			name := rec.DisplayName
			if name == "" {
				name = rec.ProductCode
			}
			line := name
			if rec.DisplayVersion != "" {
				line += " " + rec.DisplayVersion
			}
			if rec.Publisher != "" {
				line += " (" + rec.Publisher + ")"
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintf(w, "\n%d application(s)\n", len(records))
		return nil
	}
}

func structuredOutput(cfg *config.Config) bool {
	out := strings.ToLower(cfg.Output)
	return out == "json" || out == "yaml"
}

func printFieldValues(identifier string, values []string, cfg *config.Config) {
	if len(values) == 0 {
		fmt.Printf("No applications found matching %q\n", identifier)
		return
	}
	for _, v := range values {
		if v == "" {
			v = cfg.Placeholder
		}
		fmt.Println(v)
	}
}
