package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/teammate-matcher/internal/observability"
	"github.com/jonathan/teammate-matcher/internal/parsing"
	"github.com/jonathan/teammate-matcher/internal/schemas"
	"github.com/jonathan/teammate-matcher/internal/types"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume document into a structured profile JSON",
	Long:  "Parse a resume (PDF or plain text) into structured profile JSON: contact details, canonical skills, roles, experience, education, work history and achievement signal.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseAsText     bool
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to resume file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseCmd.Flags().BoolVar(&parseAsText, "text", false, "Treat input as plain text, skipping document extraction")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a human-readable profile summary to stderr")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(parseInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	profile, err := parseInput(data)
	if err != nil {
		var parseErr *parsing.ParseError
		if errors.As(err, &parseErr) && parseErr.RawTextPreview != "" {
			fmt.Fprintf(os.Stderr, "Extracted text preview:\n%s\n", parseErr.RawTextPreview)
		}
		return err
	}

	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	// Validate against the schema when it can be located; a missing schema
	// file is not an error for ad-hoc runs.
	if schemaPath := schemas.ResolveSchemaPath("schemas/structured_profile.schema.json"); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, jsonBytes); err != nil {
			var loadErr *schemas.SchemaLoadError
			if !errors.As(err, &loadErr) {
				return fmt.Errorf("parsed profile failed schema validation: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Warning: could not load schema: %v\n", loadErr)
		}
	}

	if parseVerbose {
		observability.NewPrinter(os.Stderr).PrintProfile(profile)
	}

	return writeOutput(parseOutputFile, jsonBytes)
}

func parseInput(data []byte) (*types.StructuredProfile, error) {
	if parseAsText {
		return parsing.ParseResumeText(string(data))
	}
	return parsing.ParseResume(data)
}

func writeOutput(path string, jsonBytes []byte) error {
	if path == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(path, append(jsonBytes, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
