package main

import (
	"os"

	"mooring/internal/openapi"

	"github.com/spf13/cobra"
)

var openapiFormat string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document of the snapshot payload",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := openapi.Marshal(openapi.Generate(), openapiFormat)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	openapiCmd.Flags().StringVar(&openapiFormat, "format", "json", "output format: json or yaml")
}
