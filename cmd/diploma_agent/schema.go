package main

import (
	"io"

	"github.com/jonathan/diploma-scanner/schemas"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the extracted record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := io.WriteString(cmd.OutOrStdout(), schemas.DiplomaRecordSchema)
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
