package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/teammate-matcher/internal/config"
	"github.com/jonathan/teammate-matcher/internal/embedding"
	"github.com/jonathan/teammate-matcher/internal/types"
	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Synthesize and embed a profile, project, or teammate request",
	Long:  "Render a structured record into its descriptive embedding text and map it to a semantic vector. On embedding failure the output carries the neutral fallback vector with a reason instead of an error.",
	RunE:  runEmbed,
}

var (
	embedKind       string
	embedInputFile  string
	embedOutputFile string
	embedConfigFile string
	embedTextOnly   bool
)

func init() {
	embedCmd.Flags().StringVarP(&embedKind, "kind", "k", "profile", "Record kind: profile, project, or request")
	embedCmd.Flags().StringVarP(&embedInputFile, "in", "i", "", "Path to record JSON file (required)")
	embedCmd.Flags().StringVarP(&embedOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	embedCmd.Flags().StringVar(&embedConfigFile, "config", "", "Path to config JSON file")
	embedCmd.Flags().BoolVar(&embedTextOnly, "text-only", false, "Only synthesize the text, skip the model call")
	_ = embedCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(embedCmd)
}

// embedOutput is the JSON result of the embed command.
type embedOutput struct {
	Kind   string            `json:"kind"`
	Text   string            `json:"text"`
	Vector *embedding.Vector `json:"vector,omitempty"`
}

func runEmbed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(embedConfigFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(embedInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	text, err := synthesize(embedding.Kind(embedKind), data)
	if err != nil {
		return err
	}

	output := embedOutput{Kind: embedKind, Text: text}
	if !embedTextOnly {
		embedder := embedding.NewGeminiEmbedderForModel(cfg.APIKey, cfg.EmbeddingModel, cfg.EmbeddingDimension)
		defer func() { _ = embedder.Close() }()

		vector := embedder.Embed(context.Background(), text)
		output.Vector = &vector
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return writeOutput(embedOutputFile, jsonBytes)
}

// synthesize unmarshals the record as the requested kind and renders its
// embedding text.
func synthesize(kind embedding.Kind, data []byte) (string, error) {
	switch kind {
	case embedding.KindProfile:
		var profile types.CandidateProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			return "", fmt.Errorf("failed to parse profile JSON: %w", err)
		}
		return embedding.ProfileText(&profile), nil
	case embedding.KindProject:
		var project types.ProjectTarget
		if err := json.Unmarshal(data, &project); err != nil {
			return "", fmt.Errorf("failed to parse project JSON: %w", err)
		}
		return embedding.ProjectText(&project), nil
	case embedding.KindRequest:
		var request types.TeammateRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return "", fmt.Errorf("failed to parse request JSON: %w", err)
		}
		return embedding.RequestText(&request), nil
	default:
		return "", fmt.Errorf("unknown record kind %q (want profile, project, or request)", kind)
	}
}
