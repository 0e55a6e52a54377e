package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the available research agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry(nil)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, r := range registry.List() {
			fmt.Printf("%s  %s\n", bold.Sprintf("%-12s", r.Service()), strings.Join(r.Categories(), ", "))
		}
		return nil
	},
}
