package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"esperanca/internal/models"
	"esperanca/internal/observability"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for store products. The
// backing store is a single JSON document, so every mutation rewrites the
// whole list.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type jsonProductRepository struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewProductRepository returns a ProductRepository backed by the JSON
// document at path.
func NewProductRepository(path string, logger *slog.Logger) ProductRepository {
	return &jsonProductRepository{path: path, logger: logger}
}

// load reads the document tolerantly: a missing file, empty content, invalid
// JSON or a non-list payload all yield an empty list. Malformed entries are
// skipped rather than failing the whole document.
func (r *jsonProductRepository) load(ctx context.Context) []models.Product {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.ErrorContext(ctx, "failed to read product store", "path", r.path, "error", err)
		}
		return []models.Product{}
	}

	if len(raw) == 0 {
		return []models.Product{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		r.logger.ErrorContext(ctx, "invalid product store content", "path", r.path, "error", err)
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(entries))
	for _, entry := range entries {
		var product models.Product
		if err := json.Unmarshal(entry, &product); err != nil {
			continue
		}
		products = append(products, product)
	}
	return products
}

// save rewrites the document atomically: marshal, write a temp file in the
// same directory, then rename over the target.
func (r *jsonProductRepository) save(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return models.NewInternalError(err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		observability.StoreWriteErrors.Inc()
		return models.NewInternalError(err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp*")
	if err != nil {
		observability.StoreWriteErrors.Inc()
		return models.NewInternalError(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		observability.StoreWriteErrors.Inc()
		return models.NewInternalError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		observability.StoreWriteErrors.Inc()
		return models.NewInternalError(err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		observability.StoreWriteErrors.Inc()
		r.logger.ErrorContext(ctx, "failed to save product store", "path", r.path, "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jsonProductRepository) List(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx), nil
}

func (r *jsonProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.load(ctx) {
		if product.ID == id {
			p := product
			return &p, nil
		}
	}
	return nil, models.NewNotFoundError("Produto", id)
}

func (r *jsonProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = models.ISOTime{Time: time.Now().UTC()}
	}

	products := r.load(ctx)
	for _, existing := range products {
		if existing.ID == product.ID {
			return models.NewConflictError("id", fmt.Sprintf("Produto %s já existe.", product.ID))
		}
	}
	products = append(products, *product)
	return r.save(ctx, products)
}

func (r *jsonProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := r.load(ctx)
	for i, existing := range products {
		if existing.ID == product.ID {
			if product.CreatedAt.IsZero() {
				product.CreatedAt = existing.CreatedAt
			}
			products[i] = *product
			return r.save(ctx, products)
		}
	}
	return models.NewNotFoundError("Produto", product.ID)
}

func (r *jsonProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := r.load(ctx)
	for i, existing := range products {
		if existing.ID == id {
			products = append(products[:i], products[i+1:]...)
			return r.save(ctx, products)
		}
	}
	return models.NewNotFoundError("Produto", id)
}
