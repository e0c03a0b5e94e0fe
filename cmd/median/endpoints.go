package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediancode/apidesign/store"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Manage API endpoints",
}

var (
	endpointDescription string
	endpointTag         string
)

func init() {
	createCmd := &cobra.Command{
		Use:   "create <method> <path>",
		Short: "Create an endpoint; path parameters are derived from {tokens}",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			nsID, err := resolveNamespace(ctx)
			if err != nil {
				return err
			}
			opts := store.EndpointOptions{Description: endpointDescription}
			if endpointTag != "" {
				tag := ctx.Tags.FindByName(nsID, endpointTag)
				if tag == nil {
					tag = ctx.Tags.Create(endpointTag, nsID, "")
				}
				if tag == nil {
					return fmt.Errorf("cannot resolve tag %q", endpointTag)
				}
				opts.TagID = tag.ID
			}
			ep := ctx.Endpoints.Create(args[0], args[1], nsID, opts)
			if ep == nil {
				return fmt.Errorf("unsupported method: %s", args[0])
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Printf("Created %s %s (%s), %d path parameter(s)\n",
				ep.Method, ep.Path, ep.ID, len(ep.PathParams))
			return nil
		},
	}
	createCmd.Flags().StringVar(&endpointDescription, "description", "", "Endpoint description")
	createCmd.Flags().StringVar(&endpointTag, "tag", "", "Tag name (created if missing)")

	endpointsCmd.AddCommand(createCmd)
	endpointsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List endpoints in the namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			nsID, err := resolveNamespace(ctx)
			if err != nil {
				return err
			}
			endpoints := ctx.Endpoints.ByNamespace(nsID)
			rows := make([][]string, len(endpoints))
			for i, ep := range endpoints {
				tagName := ""
				if tag := ctx.Tags.GetByID(ep.TagID); tag != nil {
					tagName = tag.Name
				}
				rows[i] = []string{ep.ID, ep.Method, ep.Path, tagName, ep.Description}
			}
			return printResult(endpoints, []string{"ID", "METHOD", "PATH", "TAG", "DESCRIPTION"}, rows)
		},
	})
	endpointsCmd.AddCommand(&cobra.Command{
		Use:   "duplicate <id>",
		Short: "Duplicate an endpoint under a fresh ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			dup := ctx.Endpoints.Duplicate(args[0])
			if dup == nil {
				return fmt.Errorf("endpoint not found: %s", args[0])
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Printf("Created %s %s (%s)\n", dup.Method, dup.Path, dup.ID)
			return nil
		},
	})
	endpointsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			res := ctx.Endpoints.Delete(args[0])
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
