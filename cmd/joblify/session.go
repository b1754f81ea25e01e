package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/auth"
	"github.com/joblify/employer-console/internal/types"
	"github.com/spf13/cobra"
)

const genericFailure = "An error occurred. Please try again."

var (
	loginEmail     string
	loginPassword  string
	signupName     string
	signupEmail    string
	signupPassword string
	signupCompany  string
	signupWebsite  string
	signupBio      string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an employer and store the session token",
	Long:  "Exchange employer credentials for a token and store it in the credentials file. The password is read from stdin when --password is omitted.",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new employer account",
	Args:  cobra.NoArgs,
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity carried by the stored token",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")

	signupCmd.Flags().StringVar(&signupName, "name", "", "Contact name (required)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email (required)")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password, at least 6 characters")
	signupCmd.Flags().StringVar(&signupCompany, "company", "", "Company name")
	signupCmd.Flags().StringVar(&signupWebsite, "website", "", "Company website")
	signupCmd.Flags().StringVar(&signupBio, "bio", "", "Company description")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

// readPassword returns flagValue, or the first line of the command's stdin.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", errors.New("password is required")
	}
	return line, nil
}

// sessionError reports a failed login or signup with the server message,
// fallback for a rejection without one, or a generic message when the API
// could not be reached.
func sessionError(err error, fallback string) error {
	var apiErr *api.Error
	switch {
	case !errors.As(err, &apiErr):
		return err
	case apiErr.Status == 0:
		return errors.New(genericFailure)
	default:
		return errors.New(api.MessageOr(err, fallback))
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	password, err := readPassword(cmd, loginPassword)
	if err != nil {
		return err
	}

	resp, err := a.client.Login(cmd.Context(), &types.LoginRequest{Email: loginEmail, Password: password})
	if err != nil {
		return sessionError(err, "Login failed")
	}
	if err := a.session.Save(resp.Token); err != nil {
		return err
	}

	a.printer.PrintMessage("Login successful!")
	if resp.User != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", resp.User.Name, resp.User.Email)
	}
	return nil
}

func runSignup(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	password, err := readPassword(cmd, signupPassword)
	if err != nil {
		return err
	}

	req := &types.SignupRequest{
		Name:     signupName,
		Email:    signupEmail,
		Password: password,
		Profile: types.CompanyProfile{
			CompanyName:    signupCompany,
			CompanyWebsite: signupWebsite,
			Bio:            signupBio,
		},
	}
	if err := a.client.Signup(cmd.Context(), req); err != nil {
		return sessionError(err, "Registration failed")
	}

	a.printer.PrintMessage("Registration successful! Log in to continue.")
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.session.Clear(); err != nil {
		return err
	}
	a.printer.PrintMessage("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	id, ok := auth.DecodeIdentity(a.session.Token(), a.logger)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Logged in (token carries no readable identity)")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "User: %s\n", id.UserID)
	if id.Role != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Role: %s\n", id.Role)
	}
	return nil
}
