package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/recruitkit/resumedex/internal/db"
	"github.com/recruitkit/resumedex/internal/domain"
)

// store is the consumer interface for resume persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// IndexParams holds the tunables of the resume vector index.
type IndexParams struct {
	Dimensions  int
	HNSWM       int
	HNSWEFBuild int
}

// Repo implements resume persistence and index provisioning over db.Store.
type Repo struct {
	store  store
	params IndexParams
}

// New creates a resume repository.
func New(s store, params IndexParams) *Repo {
	if params.Dimensions <= 0 {
		params.Dimensions = domain.DefaultDimensions
	}
	return &Repo{store: s, params: params}
}

// Put stores a single resume.
func (r *Repo) Put(ctx context.Context, res *domain.Resume) error {
	if len(res.Vector) != r.params.Dimensions {
		return fmt.Errorf("resume %d has %d dims, index expects %d: %w",
			res.ID, len(res.Vector), r.params.Dimensions, domain.ErrVectorDimMismatch)
	}
	if err := r.store.HSet(ctx, res.Key(), buildHashFields(res)); err != nil {
		return fmt.Errorf("hset %s: %w", res.Key(), err)
	}
	return nil
}

// PutBatch stores multiple resumes in one pipelined round-trip.
func (r *Repo) PutBatch(ctx context.Context, resumes []domain.Resume) error {
	if len(resumes) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(resumes))
	for i := range resumes {
		res := &resumes[i]
		if len(res.Vector) != r.params.Dimensions {
			return fmt.Errorf("resume %d has %d dims, index expects %d: %w",
				res.ID, len(res.Vector), r.params.Dimensions, domain.ErrVectorDimMismatch)
		}
		items[i] = db.HashSetItem{Key: res.Key(), Fields: buildHashFields(res)}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset batch of %d: %w", len(items), err)
	}
	return nil
}

// Get returns a resume by ID.
func (r *Repo) Get(ctx context.Context, id int) (domain.Resume, error) {
	key := domain.ResumeKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	// HGETALL returns an empty map for missing keys.
	if len(fields) == 0 {
		return domain.Resume{}, domain.ErrNotFound
	}
	return parseHashFields(id, fields), nil
}

// Delete removes a resume.
func (r *Repo) Delete(ctx context.Context, id int) error {
	key := domain.ResumeKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of indexed resumes.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, domain.IndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count resumes: %w", err)
	}
	return n, nil
}

// EnsureIndex provisions the resume FT index if it does not exist yet.
// Provisioning happens at startup, never as a search side effect.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, domain.IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := indexDefinition(r.params)
	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Lost a create race with another instance; the index is there.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", domain.IndexName, err)
	}
	return nil
}

// IndexReady reports whether the resume index has been provisioned.
func (r *Repo) IndexReady(ctx context.Context) (bool, error) {
	return r.store.IndexExists(ctx, domain.IndexName)
}

func indexDefinition(p IndexParams) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:        domain.IndexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{domain.ResumeKeyPrefix},
		Fields: []db.IndexField{
			{Name: fieldID, Type: db.IndexFieldNumeric},
			{Name: fieldCategory, Type: db.IndexFieldTag},
			{Name: fieldBody, Type: db.IndexFieldText},
			{
				Name:              fieldEmbedding,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         p.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           p.HNSWM,
				VectorEFConstruct: p.HNSWEFBuild,
			},
		},
	}
}
