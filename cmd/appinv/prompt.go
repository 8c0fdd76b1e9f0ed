package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/appinv/appinv/internal/inventory"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactively look up an application and print its details",
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := newService()

		reader := bufio.NewReader(os.Stdin)

		fmt.Println("Look up installed applications")
		fmt.Println("  1) by name (substring)")
		fmt.Println("  2) by product code (exact)")
		fmt.Print("Choice [1]: ")

		choice, err := reader.ReadString('\n')
		if err != nil {
			fail("Failed to read input: %v", err)
		}

		mode := inventory.MatchName
		if strings.TrimSpace(choice) == "2" {
			mode = inventory.MatchProductCode
		}

		fmt.Print("Identifier: ")
		identifier, err := reader.ReadString('\n')
		if err != nil {
			fail("Failed to read input: %v", err)
		}
		identifier = strings.TrimRight(identifier, "\r\n")

		if err := svc.PrintApplicationDetails(identifier, mode); err != nil {
			fail("%v", err)
		}
	},
}
