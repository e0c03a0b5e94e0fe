package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show field type usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext()
		if err != nil {
			return err
		}
		usage := ctx.Types.Usage()
		rows := make([][]string, len(usage))
		for i, u := range usage {
			rows[i] = []string{u.Name, strconv.Itoa(u.UsedInFields)}
		}
		return printResult(usage, []string{"TYPE", "FIELDS"}, rows)
	},
}
