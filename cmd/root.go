package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wayfarer-server",
	Short: "Wayfarer backend server",
	Long:  "Wayfarer backend, a conversational travel assistant with layered conversation memory.",
}

func Execute() error {
	return rootCmd.Execute()
}
