package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdguardTeam/FilterListManager/internal/cliapp"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one update cycle over every stale, enabled filter",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	result, err := app.Service.UpdateFilters(cmd.Context())
	if err != nil {
		return &cliapp.CodedError{Code: cliapp.ExitNetwork, Err: fmt.Errorf("update filters: %w", err)}
	}

	fmt.Printf("updated: %v\n", result.Updated)
	fmt.Printf("unchanged: %v\n", result.Unchanged)
	for id, cause := range result.Errors {
		fmt.Printf("failed: filter %d: %v\n", id, cause)
	}

	if len(result.Errors) > 0 {
		return &cliapp.CodedError{Code: cliapp.ExitNetwork, Err: fmt.Errorf("%d filter(s) failed to update", len(result.Errors))}
	}
	return nil
}
