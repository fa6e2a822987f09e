package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jacentio/stockroom/warehouse"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import inventory or products from a JSON file",
}

var importInventoryCmd = &cobra.Command{
	Use:   "inventory <file>",
	Short: "Import stock lines as articles",
	Long: `Import reads a JSON array of stock lines and saves each one as an article.

Example:
  stockroom import inventory inventory.json

  [{"art_id": 1, "name": "leg", "stock": 12}]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		views, err := readList[warehouse.InventoryView](args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		return importEach(cmd, current.logger, views, func(ctx context.Context, v *warehouse.InventoryView) error {
			_, err := current.articles.SaveInventory(ctx, v)
			return err
		})
	},
}

var importProductsCmd = &cobra.Command{
	Use:   "products <file>",
	Short: "Import products together with their articles",
	Long: `Import reads a JSON array of products and saves each one. The articles a
product lists are saved before the product.

Example:
  stockroom import products products.json

  [{"productId": 1, "name": "Table", "contain_articles": [{"art_id": 1, "amount_of": 4}]}]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		views, err := readList[warehouse.ProductView](args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		return importEach(cmd, current.logger, views, func(ctx context.Context, v *warehouse.ProductView) error {
			_, err := current.products.Save(ctx, v)
			return err
		})
	},
}

func init() {
	importCmd.AddCommand(importInventoryCmd)
	importCmd.AddCommand(importProductsCmd)
}

// importEach saves every element and keeps going past failures.
func importEach[T any](cmd *cobra.Command, logger *slog.Logger, views []*T, save func(context.Context, *T) error) error {
	var errs []error
	saved := 0
	for i, v := range views {
		if err := save(cmd.Context(), v); err != nil {
			logger.Warn("import element failed", "index", i, "error", err)
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		saved++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d\n", saved, len(views))
	return errors.Join(errs...)
}
