// Profile commands: the local identity gate. Selecting or creating a
// profile sets it as current; identity is advisory, not a security
// boundary.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known profiles",
	RunE:  runProfileList,
}

var profileUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Select a profile, creating it on first use",
	Long: `Use selects the acting profile. A name seen for the first time is
created on the spot; there is no password or verification step.

Example:
  stockbook profile use maja`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileUse,
}

var profileCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the acting profile",
	RunE:  runProfileCurrent,
}

var profileLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the acting profile and any active log selection",
	RunE:  runProfileLogout,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileCurrentCmd)
	profileCmd.AddCommand(profileLogoutCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles := book.Profiles()

	if flagJSON {
		return printJSON(profiles)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet. Run 'stockbook profile use NAME' to create one.")
		return nil
	}

	current, _ := book.CurrentProfile()
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED\t")
	for _, p := range profiles {
		marker := ""
		if p.Name == current.Name {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%s\t%s\t\n", p.Name, marker, p.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Print(sb.String())
	return nil
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	p, err := book.SelectProfile(args[0])
	if err != nil {
		return fmt.Errorf("select profile: %w", err)
	}

	if flagJSON {
		return printJSON(p)
	}
	fmt.Printf("Acting as %s\n", p.Name)
	return nil
}

func runProfileCurrent(cmd *cobra.Command, args []string) error {
	p, err := requireProfile()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(p)
	}
	fmt.Println(p.Name)
	return nil
}

func runProfileLogout(cmd *cobra.Command, args []string) error {
	if err := book.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Println("Logged out")
	return nil
}
