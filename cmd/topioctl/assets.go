package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topio-market/topio-registry/client"
)

func init() {
	assetsCmd := &cobra.Command{Use: "assets", Short: "Asset operations"}

	var (
		ownerID     int64
		assetType   string
		localID     string
		description string
	)

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register an asset and print its topio id",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := client.AssetRegistration{OwnerID: ownerID, AssetType: assetType}
			if cmd.Flags().Changed("local-id") {
				reg.LocalID = &localID
			}
			if cmd.Flags().Changed("description") {
				reg.Description = &description
			}
			a, err := newClient().RegisterAsset(cmd.Context(), reg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a)
		},
	}
	registerCmd.Flags().Int64VarP(&ownerID, "owner", "o", 0, "Owner user id (required)")
	registerCmd.Flags().StringVarP(&assetType, "type", "t", "", "Registered asset type id (required)")
	registerCmd.Flags().StringVarP(&localID, "local-id", "l", "", "Owner-local identifier, e.g. a URL")
	registerCmd.Flags().StringVarP(&description, "description", "d", "", "Human readable description")
	_ = registerCmd.MarkFlagRequired("owner")
	_ = registerCmd.MarkFlagRequired("type")
	assetsCmd.AddCommand(registerCmd)

	topioIDCmd := &cobra.Command{
		Use:   "topio-id",
		Short: "Resolve an owner-local id to its topio id",
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := newClient().TopioID(cmd.Context(), ownerID, assetType, localID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tid)
			return err
		},
	}
	topioIDCmd.Flags().Int64VarP(&ownerID, "owner", "o", 0, "Owner user id (required)")
	topioIDCmd.Flags().StringVarP(&assetType, "type", "t", "", "Registered asset type id (required)")
	topioIDCmd.Flags().StringVarP(&localID, "local-id", "l", "", "Owner-local identifier (required)")
	_ = topioIDCmd.MarkFlagRequired("owner")
	_ = topioIDCmd.MarkFlagRequired("type")
	_ = topioIDCmd.MarkFlagRequired("local-id")
	assetsCmd.AddCommand(topioIDCmd)

	localIDCmd := &cobra.Command{
		Use:   "local-id TOPIO_ID",
		Short: "Resolve a topio id back to its owner-local id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lid, err := newClient().LocalID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), lid)
			return err
		},
	}
	assetsCmd.AddCommand(localIDCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List assets, optionally for one owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			var owner *int64
			if cmd.Flags().Changed("owner") {
				owner = &ownerID
			}
			assets, err := newClient().ListAssets(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), assets)
		},
	}
	listCmd.Flags().Int64VarP(&ownerID, "owner", "o", 0, "Filter by owner user id")
	assetsCmd.AddCommand(listCmd)

	rootCmd.AddCommand(assetsCmd)
}
