package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var namespacesCmd = &cobra.Command{
	Use:   "namespaces",
	Short: "Manage namespaces",
}

var namespaceDescription string

func init() {
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			ns := ctx.Namespaces.Create(args[0], namespaceDescription)
			if ns == nil {
				return fmt.Errorf("namespace %q already exists", args[0])
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Printf("Created namespace %s (%s)\n", ns.Name, ns.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&namespaceDescription, "description", "", "Namespace description")

	namespacesCmd.AddCommand(createCmd)
	namespacesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List namespaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			active := ctx.Namespaces.Active().ID
			namespaces := ctx.Namespaces.All()
			rows := make([][]string, len(namespaces))
			for i, ns := range namespaces {
				marker := ""
				if ns.ID == active {
					marker = "*"
				}
				rows[i] = []string{ns.ID, ns.Name, strconv.FormatBool(ns.Locked), marker}
			}
			return printResult(namespaces, []string{"ID", "NAME", "LOCKED", "ACTIVE"}, rows)
		},
	})
	namespacesCmd.AddCommand(&cobra.Command{
		Use:   "use <id-or-name>",
		Short: "Set the active namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			namespaceName = args[0]
			nsID, err := resolveNamespace(ctx)
			if err != nil {
				return err
			}
			if err := ctx.Namespaces.SetActive(nsID); err != nil {
				return err
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Printf("Active namespace: %s\n", ctx.Namespaces.Active().Name)
			return nil
		},
	})
	namespacesCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an empty namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			res := ctx.Namespaces.Delete(args[0])
			if !res.OK {
				return fmt.Errorf("%s", res.Err)
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Println(res.Message)
			return nil
		},
	})
}
