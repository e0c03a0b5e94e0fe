package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage endpoint tags",
}

var tagDescription string

func init() {
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag in the namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			nsID, err := resolveNamespace(ctx)
			if err != nil {
				return err
			}
			tag := ctx.Tags.Create(args[0], nsID, tagDescription)
			if tag == nil {
				return fmt.Errorf("tag %q already exists in this namespace", args[0])
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Printf("Created tag %s (%s)\n", tag.Name, tag.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&tagDescription, "description", "", "Tag description")

	tagsCmd.AddCommand(createCmd)
	tagsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags in the namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			nsID, err := resolveNamespace(ctx)
			if err != nil {
				return err
			}
			tags := ctx.Tags.ByNamespace(nsID)
			rows := make([][]string, len(tags))
			for i, tag := range tags {
				rows[i] = []string{tag.ID, tag.Name, tag.Description}
			}
			return printResult(tags, []string{"ID", "NAME", "DESCRIPTION"}, rows)
		},
	})
	tagsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag, detaching it from its endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			res := ctx.Tags.DeleteWithCleanup(args[0])
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
