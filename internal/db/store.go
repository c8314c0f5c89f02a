// Package db provides the PostgreSQL persistence collaborator the matching
// core consumes: it supplies candidate and project records (with any
// previously computed embedding) and accepts freshly computed embeddings to
// persist back. The core never owns schema or CRUD beyond this contract.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/teammate-matcher/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// GetProject loads a single project target. The embedding column may be
// NULL when it was never computed; the returned target then has a nil
// Embedding and the caller decides whether to compute and persist one.
func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*types.ProjectTarget, error) {
	var (
		target                         types.ProjectTarget
		skillsJSON, rolesJSON, embJSON []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, required_skills, required_roles,
		        min_experience, max_experience, COALESCE(timezone, ''), embedding
		 FROM projects WHERE id = $1`,
		id,
	).Scan(&target.ID, &target.Title, &target.Description, &skillsJSON, &rolesJSON,
		&target.MinExperience, &target.MaxExperience, &target.Timezone, &embJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", id, err)
	}

	if err := unmarshalJSONColumns(map[string]columnTarget{
		"required_skills": {skillsJSON, &target.RequiredSkills},
		"required_roles":  {rolesJSON, &target.RequiredRoles},
		"embedding":       {embJSON, &target.Embedding},
	}); err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	return &target, nil
}

// ListCandidates loads candidate profiles for ranking, newest first.
func (s *Store) ListCandidates(ctx context.Context, limit int) ([]*types.CandidateProfile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(bio, ''), skills, roles,
		        COALESCE(experience_years, 0), COALESCE(timezone, ''), embedding
		 FROM users ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*types.CandidateProfile
	for rows.Next() {
		var (
			candidate                      types.CandidateProfile
			skillsJSON, rolesJSON, embJSON []byte
		)
		if err := rows.Scan(&candidate.ID, &candidate.Name, &candidate.Bio,
			&skillsJSON, &rolesJSON, &candidate.ExperienceYears,
			&candidate.Timezone, &embJSON); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if err := unmarshalJSONColumns(map[string]columnTarget{
			"skills":    {skillsJSON, &candidate.Skills},
			"roles":     {rolesJSON, &candidate.Roles},
			"embedding": {embJSON, &candidate.Embedding},
		}); err != nil {
			return nil, fmt.Errorf("candidate %s: %w", candidate.ID, err)
		}
		candidates = append(candidates, &candidate)
	}
	return candidates, rows.Err()
}

// SaveUserEmbedding persists a freshly computed embedding for a user.
func (s *Store) SaveUserEmbedding(ctx context.Context, id uuid.UUID, vector []float32) error {
	return s.saveEmbedding(ctx, "users", id, vector)
}

// SaveProjectEmbedding persists a freshly computed embedding for a project.
func (s *Store) SaveProjectEmbedding(ctx context.Context, id uuid.UUID, vector []float32) error {
	return s.saveEmbedding(ctx, "projects", id, vector)
}

func (s *Store) saveEmbedding(ctx context.Context, table string, id uuid.UUID, vector []float32) error {
	embJSON, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET embedding = $1, embedding_updated_at = NOW() WHERE id = $2`, table),
		embJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s embedding for %s: %w", table, id, err)
	}
	return nil
}

// columnTarget pairs raw JSONB bytes with their destination.
type columnTarget struct {
	raw  []byte
	dest any
}

// unmarshalJSONColumns decodes nullable JSONB columns; a NULL column leaves
// the destination at its zero value.
func unmarshalJSONColumns(columns map[string]columnTarget) error {
	for name, col := range columns {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return fmt.Errorf("failed to decode %s column: %w", name, err)
		}
	}
	return nil
}
