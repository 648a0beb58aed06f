package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(profileCmd)

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileSelectCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password (not recommended, use interactive prompt)")
	loginCmd.Flags().StringP("server", "s", "http://localhost:8080", "Server URL")
	loginCmd.Flags().String("profile", "default", "Profile name")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Manage authentication and server profiles for the tourvia API.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to a tourvia server",
	Long: `Authenticate against a tourvia server with email and password.

Credentials are prompted for when not passed via flags, and the resulting
access token is stored in the named profile.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		serverURL, _ := cmd.Flags().GetString("server")
		profileName, _ := cmd.Flags().GetString("profile")

		if email == "" {
			fmt.Print("Email: ")
			_, _ = fmt.Scanln(&email)
		}
		if password == "" {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(syscall.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		}

		if email == "" {
			return fmt.Errorf("email is required")
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		client := NewAPIClient(serverURL, "")

		fmt.Printf("Authenticating with %s...\n", serverURL)
		pair, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		profile := Profile{
			Name:      profileName,
			ServerURL: serverURL,
			Token:     pair.AccessToken,
		}
		if err := AddProfile(profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		fmt.Printf("Authenticated as %s\n", email)
		fmt.Printf("Profile '%s' saved (token expires %s)\n", profileName, pair.ExpiresAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout [profile]",
	Short: "Remove a stored authentication token",
	RunE: func(_ *cobra.Command, args []string) error {
		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			config, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			profileName = config.DefaultProfile
		}

		if profileName == "" {
			return fmt.Errorf("no profile specified and no default profile set")
		}
		if err := RemoveProfile(profileName); err != nil {
			return fmt.Errorf("failed to remove profile: %w", err)
		}

		fmt.Printf("Profile '%s' removed\n", profileName)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			fmt.Println("Status: not authenticated")
			fmt.Printf("Error: %s\n", err.Error())
			return nil
		}

		client := NewAPIClientFromProfile(profile)
		if err := client.TestConnection(cmd.Context()); err != nil {
			fmt.Println("Status: token stored but connection failed")
			fmt.Printf("Profile: %s\n", profile.Name)
			fmt.Printf("Server: %s\n", profile.ServerURL)
			fmt.Printf("Error: %s\n", err.Error())
			return nil
		}

		fmt.Println("Status: authenticated")
		fmt.Printf("Profile: %s\n", profile.Name)
		fmt.Printf("Server: %s\n", profile.ServerURL)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage server profiles",
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all profiles",
	Aliases: []string{"ls"},
	RunE: func(_ *cobra.Command, _ []string) error {
		profiles, err := ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles configured")
			return nil
		}

		config, err := LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Println("Available profiles:")
		for _, profile := range profiles {
			prefix := "  "
			if profile.Name == config.DefaultProfile {
				prefix = "* "
			}
			fmt.Printf("%s%s\n", prefix, profile.Name)
			fmt.Printf("    Server: %s\n", profile.ServerURL)
		}
		return nil
	},
}

var profileSelectCmd = &cobra.Command{
	Use:     "select [name]",
	Short:   "Select a profile as default",
	Aliases: []string{"switch", "use"},
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := SetCurrentProfile(args[0]); err != nil {
			return fmt.Errorf("failed to select profile: %w", err)
		}
		fmt.Printf("Profile '%s' selected as default\n", args[0])
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete [name]",
	Short:   "Delete a profile",
	Aliases: []string{"remove", "rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := RemoveProfile(args[0]); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		fmt.Printf("Profile '%s' deleted\n", args[0])
		return nil
	},
}
