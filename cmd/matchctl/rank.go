package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/teammate-matcher/internal/config"
	"github.com/jonathan/teammate-matcher/internal/db"
	"github.com/jonathan/teammate-matcher/internal/embedding"
	"github.com/jonathan/teammate-matcher/internal/matching"
	"github.com/jonathan/teammate-matcher/internal/observability"
	"github.com/jonathan/teammate-matcher/internal/schemas"
	"github.com/jonathan/teammate-matcher/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a project",
	Long:  "Score every candidate against a project and output the top-k matches ordered by blended score. Candidates and project come from JSON files or from the database.",
	RunE:  runRank,
}

var (
	rankProjectFile    string
	rankCandidatesFile string
	rankProjectID      string
	rankOutputFile     string
	rankConfigFile     string
	rankTopK           int
	rankCandidateLimit int
	rankSaveEmbeddings bool
	rankVerbose        bool
)

func init() {
	rankCmd.Flags().StringVar(&rankProjectFile, "project", "", "Path to project JSON file")
	rankCmd.Flags().StringVar(&rankCandidatesFile, "candidates", "", "Path to candidate set JSON file")
	rankCmd.Flags().StringVar(&rankProjectID, "project-id", "", "Project UUID to load from the database")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	rankCmd.Flags().StringVar(&rankConfigFile, "config", "", "Path to config JSON file")
	rankCmd.Flags().IntVar(&rankTopK, "top-k", 0, "Maximum results to return (default from config)")
	rankCmd.Flags().IntVar(&rankCandidateLimit, "limit", 200, "Maximum candidates to load from the database")
	rankCmd.Flags().BoolVar(&rankSaveEmbeddings, "save-embeddings", false, "Persist freshly computed embeddings back to the database")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print a human-readable ranking to stderr")

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	useDatabase := rankProjectID != ""
	useFiles := rankProjectFile != "" || rankCandidatesFile != ""
	if useDatabase && useFiles {
		return fmt.Errorf("cannot use --project-id with --project/--candidates flags")
	}
	if !useDatabase && (rankProjectFile == "" || rankCandidatesFile == "") {
		return fmt.Errorf("must provide either --project-id or both --project and --candidates")
	}

	cfg, err := config.Load(rankConfigFile)
	if err != nil {
		return err
	}
	topK := rankTopK
	if topK <= 0 {
		topK = cfg.TopK
	}

	ctx := context.Background()

	var (
		project    *types.ProjectTarget
		candidates []*types.CandidateProfile
		store      *db.Store
	)
	if useDatabase {
		project, candidates, store, err = loadFromDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
	} else {
		project, candidates, err = loadFromFiles()
		if err != nil {
			return err
		}
	}

	embedder := embedding.NewGeminiEmbedderForModel(cfg.APIKey, cfg.EmbeddingModel, cfg.EmbeddingDimension)
	defer func() { _ = embedder.Close() }()
	fillMissingEmbeddings(ctx, embedder, project, candidates, store)

	engine := matching.NewEngine(cfg.Weights)
	results := engine.RankCandidates(project, candidates, topK)

	if rankVerbose {
		observability.NewPrinter(os.Stderr).PrintMatches(results)
	}

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return writeOutput(rankOutputFile, jsonBytes)
}

// loadFromDatabase loads the project and the candidate pool concurrently.
func loadFromDatabase(ctx context.Context, cfg *config.Config) (*types.ProjectTarget, []*types.CandidateProfile, *db.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, fmt.Errorf("database URL is required (set DATABASE_URL or the config file)")
	}
	projectID, err := uuid.Parse(rankProjectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid project ID: %w", err)
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		project    *types.ProjectTarget
		candidates []*types.CandidateProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = store.GetProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = store.ListCandidates(gctx, rankCandidateLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	return project, candidates, store, nil
}

func loadFromFiles() (*types.ProjectTarget, []*types.CandidateProfile, error) {
	projectBytes, err := os.ReadFile(rankProjectFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read project file: %w", err)
	}
	candidateBytes, err := os.ReadFile(rankCandidatesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	if err := validateInput("schemas/project.schema.json", projectBytes); err != nil {
		return nil, nil, fmt.Errorf("project input: %w", err)
	}
	if err := validateInput("schemas/candidate_set.schema.json", candidateBytes); err != nil {
		return nil, nil, fmt.Errorf("candidates input: %w", err)
	}

	var project types.ProjectTarget
	if err := json.Unmarshal(projectBytes, &project); err != nil {
		return nil, nil, fmt.Errorf("failed to parse project JSON: %w", err)
	}
	var candidates []*types.CandidateProfile
	if err := json.Unmarshal(candidateBytes, &candidates); err != nil {
		return nil, nil, fmt.Errorf("failed to parse candidates JSON: %w", err)
	}
	return &project, candidates, nil
}

// validateInput checks a document against a schema when the schema file can
// be located; a missing or unloadable schema only warns.
func validateInput(schemaRelPath string, document []byte) error {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return nil
	}
	err := schemas.ValidateBytes(schemaPath, document)
	var loadErr *schemas.SchemaLoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintf(os.Stderr, "Warning: could not load schema: %v\n", loadErr)
		return nil
	}
	return err
}

// fillMissingEmbeddings computes embeddings for any record that has none,
// batching all missing texts into one model invocation. When a store is
// present and --save-embeddings is set, computed (non-fallback) vectors are
// persisted back.
func fillMissingEmbeddings(ctx context.Context, embedder embedding.Embedder, project *types.ProjectTarget, candidates []*types.CandidateProfile, store *db.Store) {
	var texts []string
	var apply []func(embedding.Vector)

	if len(project.Embedding) == 0 {
		texts = append(texts, embedding.ProjectText(project))
		apply = append(apply, func(v embedding.Vector) {
			project.Embedding = v.Values
			persistEmbedding(ctx, store, project.ID, v, (*db.Store).SaveProjectEmbedding)
		})
	}
	for _, candidate := range candidates {
		if candidate == nil || len(candidate.Embedding) > 0 {
			continue
		}
		c := candidate
		texts = append(texts, embedding.ProfileText(c))
		apply = append(apply, func(v embedding.Vector) {
			c.Embedding = v.Values
			persistEmbedding(ctx, store, c.ID, v, (*db.Store).SaveUserEmbedding)
		})
	}
	if len(texts) == 0 {
		return
	}

	vectors := embedder.EmbedBatch(ctx, texts)
	for i, vector := range vectors {
		apply[i](vector)
	}
}

func persistEmbedding(ctx context.Context, store *db.Store, id string, vector embedding.Vector, save func(*db.Store, context.Context, uuid.UUID, []float32) error) {
	if store == nil || !rankSaveEmbeddings || vector.Fallback {
		return
	}
	recordID, err := uuid.Parse(id)
	if err != nil {
		return
	}
	if err := save(store, ctx, recordID, vector.Values); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist embedding for %s: %v\n", id, err)
	}
}
