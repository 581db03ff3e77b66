package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "organizerdashboard/docs"
)

// @title Organizer Dashboard API
// @version 1.0
// @description Event settings sessions and the create-event wizard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var rootCmd = &cobra.Command{
	Use:           "dashboard <command>",
	Short:         "Organizer dashboard backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
