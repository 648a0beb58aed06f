package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productShowCmd)
	productCmd.AddCommand(productPublishCmd)
	productCmd.AddCommand(productHideCmd)

	productListCmd.Flags().StringP("search", "q", "", "Search in title and subtitle")
	productListCmd.Flags().StringP("region", "r", "", "Filter by region")
	productListCmd.Flags().String("status", "", "Filter by status (DRAFT, PUBLISHED, HIDDEN)")
	productListCmd.Flags().Int("limit", 50, "Maximum number of products")
}

var productCmd = &cobra.Command{
	Use:     "product",
	Short:   "Manage tour products",
	Aliases: []string{"products"},
}

var productListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tour products",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}
		client := NewAPIClientFromProfile(profile)

		search, _ := cmd.Flags().GetString("search")
		region, _ := cmd.Flags().GetString("region")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		products, err := client.ListProducts(cmd.Context(), &ProductListOptions{
			Search: search,
			Region: region,
			Status: status,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}

		return RenderProducts(products, viper.GetString("output"))
	},
}

var productShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}
		client := NewAPIClientFromProfile(profile)

		product, err := client.GetProduct(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}

		return RenderProductDetails(product, viper.GetString("output"))
	},
}

var productPublishCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "Publish a product to the public catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setProductStatus(cmd, args[0], "PUBLISHED")
	},
}

var productHideCmd = &cobra.Command{
	Use:   "hide [id]",
	Short: "Hide a product from the public catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setProductStatus(cmd, args[0], "HIDDEN")
	},
}

func setProductStatus(cmd *cobra.Command, productID, status string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}
	client := NewAPIClientFromProfile(profile)

	product, err := client.GetProduct(cmd.Context(), productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	updated, err := client.UpdateProductStatus(cmd.Context(), product, status)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	fmt.Printf("Product '%s' is now %s\n", updated.Title, updated.Status)
	return nil
}
