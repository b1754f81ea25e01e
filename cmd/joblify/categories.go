package main

import (
	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/spf13/cobra"
)

const loadCategoriesFallback = "Failed to load categories"

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse job categories",
}

var categoriesParentsCmd = &cobra.Command{
	Use:   "parents",
	Short: "List top-level categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoriesParents,
}

var categoriesSubsCmd = &cobra.Command{
	Use:   "subs <parentId>",
	Short: "List the subcategories of a parent category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesSubs,
}

func init() {
	categoriesCmd.AddCommand(categoriesParentsCmd, categoriesSubsCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesParents(cmd *cobra.Command, _ []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	cats := a.dashboard().PostForm().Categories()
	if err := cats.LoadParents(cmd.Context()); err != nil {
		return userError(&dashboard.Error{Message: loadCategoriesFallback, Cause: err})
	}
	a.printer.PrintCategories("CATEGORIES", cats.Parents())
	return nil
}

func runCategoriesSubs(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	cats := a.dashboard().PostForm().Categories()
	if err := cats.SelectParent(cmd.Context(), args[0]); err != nil {
		return userError(&dashboard.Error{Message: loadCategoriesFallback, Cause: err})
	}
	a.printer.PrintCategories("SUBCATEGORIES", cats.Options())
	return nil
}
