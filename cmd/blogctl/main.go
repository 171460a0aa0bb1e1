package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultServerURL = "http://127.0.0.1:8000"

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Simple Blog CLI",
		Long: `Simple Blog Command Line Interface

A CLI client for the simple-blog server. Reads users and posts in table,
HTML or raw form, and writes new posts directly or interactively.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.PersistentFlags().StringP("server", "S", envOr("BLOG_SERVER_URL", defaultServerURL), "blog server base URL")

	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewWriteCommand())

	// Help on the root also prints help for every subcommand, so the
	// whole surface is visible at once.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if cmd.HasParent() {
			return
		}
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nCommand %s:\n%s", sub.Name(), sub.UsageString())
		}
	})

	return rootCmd
}

func serverURL(cmd *cobra.Command) string {
	server, err := cmd.Flags().GetString("server")
	if err != nil || server == "" {
		return defaultServerURL
	}
	return server
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
