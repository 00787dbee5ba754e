package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/diploma-scanner/internal/schemas"
	rootschemas "github.com/jonathan/diploma-scanner/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved record against the record schema",
	Long: "Validate checks a diploma record JSON file, such as the output of extract, against " +
		"schemas/diploma_record.schema.json or the schema given with --schema.",
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var (
	validateJSON   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the record JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (default: the record schema)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	schemaPath := validateSchema
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath("schemas/" + rootschemas.DiplomaRecordFile)
	}

	var err error
	if schemaPath != "" {
		err = schemas.ValidateJSON(schemaPath, validateJSON)
	} else {
		// Outside the repository the schema file is not on disk; use the embedded copy.
		content, readErr := os.ReadFile(validateJSON)
		if readErr != nil {
			return fmt.Errorf("failed to read record file: %w", readErr)
		}
		schemaPath = rootschemas.DiplomaRecordFile + " (embedded)"
		err = schemas.ValidateJSONString(rootschemas.DiplomaRecordSchema, string(content))
	}

	var validationErr *schemas.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("record does not validate against schema: %w", err)
	case err != nil:
		return err
	}

	logger.Debug("record validated")
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid against %s\n", validateJSON, schemaPath)
	return err
}
