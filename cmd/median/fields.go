package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediancode/apidesign/store"
	"github.com/mediancode/apidesign/types"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage schema fields",
}

var fieldType string
var fieldDescription string

func init() {
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a field in the namespace",
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
			f := ctx.Fields.Create(args[0], nsID, store.FieldOptions{
				Type:        types.FieldType(fieldType),
				Description: fieldDescription,
			})
			if f == nil {
				return fmt.Errorf("field %q already exists in this namespace", args[0])
			}
			if err := save(ctx); err != nil {
				return err
			}
			fmt.Printf("Created field %s (%s)\n", f.Name, f.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&fieldType, "type", "t", "string", "Field type")
	createCmd.Flags().StringVar(&fieldDescription, "description", "", "Field description")

	fieldsCmd.AddCommand(createCmd)
	fieldsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List fields in the namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			nsID, err := resolveNamespace(ctx)
			if err != nil {
				return err
			}
			fields := ctx.Fields.ByNamespace(nsID)
			rows := make([][]string, len(fields))
			for i, f := range fields {
				rows[i] = []string{f.ID, f.Name, string(f.Type), strconv.Itoa(len(f.UsedInAPIs)), f.Description}
			}
			return printResult(fields, []string{"ID", "NAME", "TYPE", "APIS", "DESCRIPTION"}, rows)
		},
	})
	fieldsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			res := ctx.Fields.Delete(args[0])
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
