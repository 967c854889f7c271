package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zkmkarlsruhe/dnschanger/internal/config"
	"github.com/zkmkarlsruhe/dnschanger/internal/probe"
	"github.com/zkmkarlsruhe/dnschanger/internal/store"
	"github.com/zkmkarlsruhe/dnschanger/internal/system"
)

func runCLI() {
	var entriesFile string

	rootCmd := &cobra.Command{
		Use:   "dnschanger",
		Short: "Switch the DNS servers of the active network adapter",
		Long: `Pick a named DNS server pair from a saved list, or "Automatic" for
DHCP-assigned servers, and apply it to the active network adapter.

Run without arguments to start the GUI.`,
	}
	rootCmd.PersistentFlags().StringVar(&entriesFile, "entries", "", "DNS entries file (default: from settings, dns_settings.json)")

	mustSetup := func() *environment {
		env, err := setup(entriesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading entries: %v\n", err)
			os.Exit(1)
		}
		return env
	}

	// List command - show selectable entries
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List DNS entries",
		Run: func(cmd *cobra.Command, args []string) {
			env := mustSetup()
			for i, e := range env.core.Options() {
				fmt.Printf("%2d  %s\n", i, e)
			}
		},
	}

	// Add command - validate and store a new entry
	addCmd := &cobra.Command{
		Use:   "add <title> <primary> <secondary>",
		Short: "Add a DNS entry (e.g., 'add Quad9 9.9.9.9 149.112.112.112')",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			env := mustSetup()
			entry := store.Entry{Title: args[0], PrimaryDns: args[1], SecondaryDns: args[2]}
			if err := env.core.Add(entry); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Added: %s\n", entry.Normalize())
		},
	}

	// Remove command - delete an entry after confirmation
	var assumeYes bool
	removeCmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a DNS entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env := mustSetup()
			index := env.core.Find(args[0])
			if index < 0 {
				fmt.Fprintf(os.Stderr, "DNS entry not found: %s\n", args[0])
				os.Exit(1)
			}

			deleted := false
			err := env.core.Delete(index, func(e store.Entry) bool {
				deleted = assumeYes || confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Are you sure you want to delete '%s'?", e.Title))
				return deleted
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if deleted {
				fmt.Printf("Removed: %s\n", args[0])
			}
		},
	}
	removeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	// Apply command - set DNS on the active adapter
	applyCmd := &cobra.Command{
		Use:   "apply <title>",
		Short: "Apply a DNS entry to the active adapter ('Automatic' for DHCP)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env := mustSetup()
			index := env.core.Find(args[0])
			if index < 0 {
				fmt.Fprintf(os.Stderr, "DNS entry not found: %s\n", args[0])
				os.Exit(1)
			}

			current, err := env.core.Apply(context.Background(), index)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to set DNS: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("DNS Updated: %s\n", env.core.Options()[index].Title)
			fmt.Printf("Current DNS is: %s\n", current)
		},
	}

	// Current command - show adapter and answering resolver
	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the active adapter and the DNS server currently answering",
		Run: func(cmd *cobra.Command, args []string) {
			env := mustSetup()
			ctx := context.Background()

			adapter, err := env.core.ActiveAdapter(ctx)
			switch {
			case err != nil:
				fmt.Printf("Adapter:     error (%v)\n", err)
			case adapter == "":
				fmt.Println("Adapter:     none connected")
			default:
				fmt.Printf("Adapter:     %s\n", adapter)
			}
			fmt.Printf("Current DNS: %s\n", env.core.CurrentDNS(ctx))
		},
	}

	// Probe command - query entry servers without changing anything
	probeCmd := &cobra.Command{
		Use:   "probe [title]",
		Short: "Check that the servers of DNS entries answer",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env := mustSetup()

			entries := env.store.Entries()
			if len(args) == 1 {
				index := env.core.Find(args[0])
				switch {
				case index < 0:
					fmt.Fprintf(os.Stderr, "DNS entry not found: %s\n", args[0])
					os.Exit(1)
				case index == 0:
					fmt.Fprintln(os.Stderr, "Automatic uses DHCP-assigned servers; nothing to probe")
					os.Exit(1)
				}
				entries = []store.Entry{env.core.Options()[index]}
			}

			p := probe.New(env.config.LookupHost, env.log)
			for _, r := range p.Probe(context.Background(), entries) {
				fmt.Printf("%-20s %-40s %s\n", r.Entry.Title, r.Server, r.Status())
			}
		},
	}

	// Config command group
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings",
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
				os.Exit(1)
			}
			path, _ := config.Path()
			fmt.Printf("Settings:        %s\n", path)
			fmt.Printf("Entries file:    %s\n", cfg.EntriesFile)
			fmt.Printf("Corrupt policy:  %s\n", cfg.CorruptPolicy)
			fmt.Printf("Command timeout: %s\n", cfg.Timeout())
			fmt.Printf("Lookup host:     %s\n", cfg.LookupHost)
			fmt.Printf("Autostart:       %v\n", cfg.Autostart)
			fmt.Printf("Log level:       %s\n", cfg.LogLevel)
		},
	}

	configSetCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting (entries_file, corrupt_policy, command_timeout, lookup_host, autostart, log_level)",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
				fmt.Fprintln(os.Stderr, "Fix or remove the settings file before changing settings.")
				os.Exit(1)
			}

			key, value := args[0], args[1]
			if err := cfg.Set(key, value); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if key == "autostart" {
				if err := system.SetAutostart(cfg.Autostart); err != nil {
					fmt.Fprintf(os.Stderr, "Error changing autostart: %v\n", err)
					os.Exit(1)
				}
			}

			if err := config.Save(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Set %s = %s\n", key, value)
		},
	}

	// Build command tree
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(listCmd, addCmd, removeCmd, applyCmd, currentCmd, probeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// confirm writes a yes/no question to out and reads the answer from in.
// Anything but y or yes, including end of input, is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
