package main

import (
	"github.com/spf13/cobra"
)

func init() {
	typesCmd := &cobra.Command{Use: "asset-types", Short: "Asset type operations"}

	var id, description string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register an asset type",
		RunE: func(cmd *cobra.Command, args []string) error {
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}
			at, err := newClient().RegisterAssetType(cmd.Context(), id, desc)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), at)
		},
	}
	registerCmd.Flags().StringVarP(&id, "id", "i", "", "Type identifier, also the last topio id segment (required)")
	registerCmd.Flags().StringVarP(&description, "description", "d", "", "Human readable description")
	_ = registerCmd.MarkFlagRequired("id")
	typesCmd.AddCommand(registerCmd)

	getCmd := &cobra.Command{
		Use:   "get TYPE_ID",
		Short: "Get asset type by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := newClient().GetAssetType(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), at)
		},
	}
	typesCmd.AddCommand(getCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List asset types in registration order",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := newClient().ListAssetTypes(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), types)
		},
	}
	typesCmd.AddCommand(listCmd)

	rootCmd.AddCommand(typesCmd)
}
