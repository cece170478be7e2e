package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pwm/internal/backup"
	"pwm/internal/constants"
	"pwm/internal/filter"
	"pwm/internal/store"
	"pwm/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add <service> <username>",
	Short: "Add an account to a service",
	Long:  "Add an account. If --password is omitted, prompts on a terminal or reads the first line of stdin.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			if password, err = readPassword(); err != nil {
				return err
			}
		}

		if err := ui.ValidateAccountInput(ui.AccountInput{Service: args[0], Username: args[1], Password: password}); err != nil {
			return err
		}

		// A corrupt file must not be replaced by a one-account store
		creds, err := env.store.LoadStrict()
		if err != nil {
			return err
		}
		creds[args[0]] = append(creds[args[0]], store.Account{Username: args[1], Password: password})
		if err := env.store.SaveStrict(creds); err != nil {
			return err
		}
		fmt.Printf("Password added for %s/%s\n", args[0], args[1])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list [pattern]",
	Short:   "List services, optionally filtered by substring or glob",
	Aliases: []string{"ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		creds, err := env.store.LoadStrict()
		if err != nil {
			return err
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		services, err := filter.Apply(creds.Services(), pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		if len(services) == 0 {
			fmt.Println("No services stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tACCOUNTS")
		for _, s := range services {
			fmt.Fprintf(w, "%s\t%d\n", s, len(creds[s]))
		}
		w.Flush()
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <service>",
	Short: "Show the accounts of a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		accounts := env.store.GetAccounts(args[0])
		if len(accounts) == 0 {
			fmt.Println("No passwords found for this service.")
			return nil
		}

		reveal, _ := cmd.Flags().GetBool("reveal")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tPASSWORD")
		for _, acc := range accounts {
			password := constants.PasswordMask
			if reveal {
				password = acc.Password
			}
			fmt.Fprintf(w, "%s\t%s\n", acc.Username, password)
		}
		w.Flush()
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <service> <username>",
	Short:   "Delete every account of a service with the given username",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		removed := env.store.DeleteAccount(args[0], args[1])
		if removed == 0 {
			fmt.Println("No passwords found for this service.")
			return nil
		}
		fmt.Printf("Password deleted (%d removed)\n", removed)
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <service> <username>",
	Short: "Copy an account's password or username to the clipboard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		field, _ := cmd.Flags().GetString("field")
		if field != "password" && field != "username" {
			return fmt.Errorf("unknown field %q (want password or username)", field)
		}

		for _, acc := range env.store.GetAccounts(args[0]) {
			if acc.Username != args[1] {
				continue
			}
			value := acc.Password
			if field == "username" {
				value = acc.Username
			}
			if err := clipboard.WriteAll(value); err != nil {
				return fmt.Errorf("writing clipboard: %w", err)
			}
			fmt.Printf("Copied %s of %s/%s to clipboard\n", field, args[0], args[1])
			return nil
		}
		return fmt.Errorf("no account %q for service %q", args[1], args[0])
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the credentials file is readable and well formed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		creds, err := env.store.LoadStrict()
		if err != nil {
			return err
		}

		accounts := 0
		for _, s := range creds {
			accounts += len(s)
		}
		fmt.Printf("%s: %d services, %d accounts\n", env.store.Path(), len(creds), accounts)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Archive the credentials file into the backup directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		backups := env.backups()
		if list, _ := cmd.Flags().GetBool("list"); list {
			archives, err := backups.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(archives) == 0 {
				fmt.Fprintf(out, "No backups found in %s\n", backups.Dir())
				return nil
			}
			for _, a := range archives {
				fmt.Fprintln(out, a)
			}
			return nil
		}

		path, err := backups.Create(cmd.Context(), env.store.Path())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Replace the credentials file with the contents of a backup archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		creds, err := backup.Restore(cmd.Context(), args[0], env.store)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d services from %s\n", len(creds), args[0])
		return nil
	},
}

// readPassword prompts without echo on a terminal, otherwise reads one line
// from stdin.
func readPassword() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	addCmd.Flags().String("password", "", "Password (prompted when omitted)")
	showCmd.Flags().Bool("reveal", false, "Print passwords instead of a mask")
	copyCmd.Flags().String("field", "password", "Field to copy: password or username")
	backupCmd.Flags().Bool("list", false, "List existing backups, newest first")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
