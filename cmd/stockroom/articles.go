package main

import (
	"github.com/spf13/cobra"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Read articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every article as a stock line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		views, err := current.articles.Inventory(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), views)
	},
}

var articlesOfCmd = &cobra.Command{
	Use:   "of <product-id>",
	Short: "List the articles last saved with a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseID("product id", args[0])
		if err != nil {
			return err
		}
		views, err := current.articles.ProductArticles(cmd.Context(), productID)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), views)
	},
}

var articlesGetCmd = &cobra.Command{
	Use:   "get <product-id> <article-id>",
	Short: "Show one article of a product",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseID("product id", args[0])
		if err != nil {
			return err
		}
		articleID, err := parseID("article id", args[1])
		if err != nil {
			return err
		}
		view, err := current.articles.ProductArticle(cmd.Context(), productID, articleID)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), view)
	},
}

func init() {
	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesOfCmd)
	articlesCmd.AddCommand(articlesGetCmd)
}
