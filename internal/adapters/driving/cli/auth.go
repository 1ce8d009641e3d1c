package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/starradar-cli/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/starradar-cli/internal/adapters/driven/config/file"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage GitHub authentication",
	Long: `Store and inspect the GitHub Personal Access Token used for API
calls. The token needs the 'repo' read scope plus 'user' for starring.

The ` + auth.EnvToken + ` environment variable takes precedence over
the stored token.`,
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Set the GitHub Personal Access Token",
	RunE:  runAuthToken,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authTokenCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthToken(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("GitHub token (input hidden): ")
	token := readSecret()
	cmd.Println()
	if token == "" {
		return errors.New("no token entered")
	}

	if err := configStore.Set(configfile.KeyGitHubToken, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	cmd.Printf("Token saved to %s.\n", configStore.Path())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if os.Getenv(auth.EnvToken) != "" {
		cmd.Printf("Authenticated via %s.\n", auth.EnvToken)
		return nil
	}
	if token := configStore.GetString(configfile.KeyGitHubToken); token != "" {
		cmd.Printf("Authenticated via stored token (%s).\n", maskToken(token))
		return nil
	}
	cmd.Println("Not authenticated. Run 'starradar auth token' to set a token.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
