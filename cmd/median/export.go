package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mediancode/apidesign/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the code-generation request payload",
	Long: `Export aggregates the whole workspace (metadata, tags, endpoints,
objects, fields, validators) into the document accepted by the code
generator's /v1/generate endpoint. Output is deterministic, so exports of
the same workspace diff clean.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadContext()
		if err != nil {
			return err
		}
		req := export.Build(ctx)
		if format == "yaml" {
			data, err := yaml.Marshal(req)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}
		return export.EncodeJSON(os.Stdout, req)
	},
}
