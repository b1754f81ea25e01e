package main

import (
	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	profileName    string
	profileCompany string
	profileWebsite string
	profileBio     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or update the company profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the company profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the company profile",
	Long:  "Update the company profile. Fields not given keep their saved values; the email cannot be changed.",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "Contact name")
	profileUpdateCmd.Flags().StringVar(&profileCompany, "company", "", "Company name")
	profileUpdateCmd.Flags().StringVar(&profileWebsite, "website", "", "Company website")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "Company description")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

func profilePath() string {
	return dashboard.Route{View: dashboard.ViewProfile}.Path()
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	s, err := a.dashboard().Open(cmd.Context(), profilePath())
	if err != nil {
		return userError(err)
	}
	return a.show(s)
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}

	d := a.dashboard()
	s, err := d.Open(cmd.Context(), profilePath())
	if err != nil {
		return userError(err)
	}
	if s.Error != "" {
		return a.show(s)
	}

	update := d.Profile().Edit()
	flags := cmd.Flags()
	if flags.Changed("name") {
		update.Name = profileName
	}
	if flags.Changed("company") {
		update.Profile.CompanyName = profileCompany
	}
	if flags.Changed("website") {
		update.Profile.CompanyWebsite = profileWebsite
	}
	if flags.Changed("bio") {
		update.Profile.Bio = profileBio
	}
	if err := update.Validate(); err != nil {
		return err
	}
	if err := d.UpdateProfile(cmd.Context(), &update); err != nil {
		return userError(err)
	}

	s, err = d.Navigate(cmd.Context(), dashboard.ViewProfile, nil)
	if err != nil {
		return userError(err)
	}
	return a.show(s)
}
