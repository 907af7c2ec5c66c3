package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage catalog categories",
	}

	cmd.AddCommand(newCategoryListCommand(rootOpts))
	cmd.AddCommand(newCategoryAddCommand(rootOpts))
	cmd.AddCommand(newCategoryDeleteCommand(rootOpts))
	cmd.AddCommand(newCategoryAddSubcategoryCommand(rootOpts))
	cmd.AddCommand(newCategoryRemoveSubcategoryCommand(rootOpts))
	cmd.AddCommand(newCategorySetImageCommand(rootOpts))

	return cmd
}

func newCategoryListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List categories and subcategories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			categories := sh.Catalog.Categories()

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(categories)
			}
			if len(categories) == 0 {
				return f.Success("no categories")
			}

			var b strings.Builder
			for _, c := range categories {
				fmt.Fprintf(&b, "%-14s %s\n", c.Name, strings.Join(c.Subcategories, ", "))
			}
			return f.Success(strings.TrimRight(b.String(), "\n"))
		},
	}
}

func newCategoryAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		subcategories []string
		image         string
	)

	cmd := &cobra.Command{
		Use:           "add <name>",
		Short:         "Add a category",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.AddCategory(args[0], subcategories, image); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("added category " + strings.ToLower(strings.TrimSpace(args[0])))
		},
	}

	cmd.Flags().StringSliceVar(&subcategories, "subcategories", nil, "subcategory names")
	cmd.Flags().StringVar(&image, "image", "", "category image reference")
	return cmd
}

func newCategoryAddSubcategoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add-subcategory <category> <name>",
		Short:         "Add a subcategory to an existing category",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.AddSubcategory(args[0], args[1]); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success(fmt.Sprintf("added subcategory %s to %s", args[1], args[0]))
		},
	}
}

func newCategoryRemoveSubcategoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove-subcategory <category> <name>",
		Short:         "Remove a subcategory from a category",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.RemoveSubcategory(args[0], args[1]); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success(fmt.Sprintf("removed subcategory %s from %s", args[1], args[0]))
		},
	}
}

func newCategorySetImageCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-image <category> <image>",
		Short:         "Set a category's image reference (empty clears it)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.SetCategoryImage(args[0], args[1]); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("updated image for " + args[0])
		},
	}
}

func newCategoryDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a category (blocked while products reference it)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.DeleteCategory(args[0]); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("deleted category " + args[0])
		},
	}
}
