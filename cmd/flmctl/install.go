package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdguardTeam/FilterListManager/internal/application/port"
	"github.com/AdguardTeam/FilterListManager/internal/cliapp"
)

var (
	installTitle       string
	installDescription string
	installTrusted     bool
)

var installCmd = &cobra.Command{
	Use:   "install <url>",
	Short: "Install a custom filter list from a URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installTitle, "title", "", "custom title")
	installCmd.Flags().StringVar(&installDescription, "description", "", "custom description")
	installCmd.Flags().BoolVar(&installTrusted, "trusted", false, "mark the filter as trusted")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	id, err := app.Service.InstallCustomFilterList(cmd.Context(), port.InstallCustomFilterListRequest{
		URL:         args[0],
		Title:       installTitle,
		Description: installDescription,
		Trusted:     installTrusted,
	})
	if err != nil {
		return &cliapp.CodedError{Code: cliapp.ExitDatabase, Err: err}
	}

	fmt.Printf("installed filter %d\n", id)
	return nil
}
