package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listGroupsCmd = &cobra.Command{
	Use:   "list-groups",
	Short: "List every filter group",
	RunE:  runListGroups,
}

func init() {
	rootCmd.AddCommand(listGroupsCmd)
}

func runListGroups(cmd *cobra.Command, _ []string) error {
	groups, err := app.Service.GetAllGroups(cmd.Context(), "")
	if err != nil {
		return err
	}

	for _, g := range groups {
		fmt.Printf("%d\t%s\n", g.ID, g.Name)
	}
	return nil
}
