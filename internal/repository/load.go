package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
)

const loadColumns = `id, owner_id, origin, destination, cargo_type, weight_kg,
       length_cm, width_cm, height_cm, required_by, suggested_rate,
       requirements, photo_urls, status, created_at, updated_at`

// LoadRepo represents load repository.
type LoadRepo struct{ db *pgxpool.Pool }

// NewLoadRepo creates a new LoadRepo.
func NewLoadRepo(db *pgxpool.Pool) *LoadRepo { return &LoadRepo{db: db} }

// Create inserts a new load.
func (r *LoadRepo) Create(ctx context.Context, l *domain.Load) error {
	length, width, height := dimensionArgs(l.Dimensions)
	_, err := r.db.Exec(ctx, `
        INSERT INTO loads (id, owner_id, origin, destination, cargo_type, weight_kg,
                           length_cm, width_cm, height_cm, required_by, suggested_rate,
                           requirements, photo_urls, status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    `, l.ID, l.OwnerID, l.Origin, l.Destination, string(l.CargoType), l.WeightKG,
		length, width, height, l.RequiredBy, l.SuggestedRate,
		l.Requirements, photoArg(l.PhotoURLs), string(l.Status), l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create load: %w", err)
	}
	return nil
}

// Get returns load by its ID, or nil if absent.
func (r *LoadRepo) Get(ctx context.Context, id string) (*domain.Load, error) {
	l, err := scanLoad(r.db.QueryRow(ctx, `SELECT `+loadColumns+` FROM loads WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get load %q: %w", id, err)
	}
	return l, nil
}

// GetMany returns the loads with the given IDs keyed by ID; unknown IDs are skipped.
func (r *LoadRepo) GetMany(ctx context.Context, ids []string) (map[string]domain.Load, error) {
	out := make(map[string]domain.Load, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+loadColumns+` FROM loads WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get loads: %w", err)
	}
	list, err := collectLoads(rows)
	if err != nil {
		return nil, err
	}
	for _, l := range list {
		out[l.ID] = l
	}
	return out, nil
}

// ListByOwner returns the owner's loads, newest first.
func (r *LoadRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Load, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+loadColumns+`
        FROM loads
        WHERE owner_id = $1
        ORDER BY created_at DESC, id
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list loads of owner %q: %w", ownerID, err)
	}
	return collectLoads(rows)
}

// ListByStatus returns loads in status, newest first. A non-nil before keeps
// only loads with required_by < before.
func (r *LoadRepo) ListByStatus(ctx context.Context, status domain.LoadStatus, before *time.Time) ([]domain.Load, error) {
	q := `SELECT ` + loadColumns + ` FROM loads WHERE status = $1`
	args := []any{string(status)}
	if before != nil {
		q += fmt.Sprintf(" AND required_by < $%d", len(args)+1)
		args = append(args, *before)
	}
	q += ` ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list loads by status %q: %w", status, err)
	}
	return collectLoads(rows)
}

// UpdateFields overwrites the editable attributes of a load owned by ownerID
// while it is still published. It returns nil if no such row exists.
func (r *LoadRepo) UpdateFields(ctx context.Context, id, ownerID string, f domain.LoadFields, at time.Time) (*domain.Load, error) {
	length, width, height := dimensionArgs(f.Dimensions)
	l, err := scanLoad(r.db.QueryRow(ctx, `
        UPDATE loads
        SET origin = $3, destination = $4, cargo_type = $5, weight_kg = $6,
            length_cm = $7, width_cm = $8, height_cm = $9, required_by = $10,
            suggested_rate = $11, requirements = $12, photo_urls = $13, updated_at = $14
        WHERE id = $1 AND owner_id = $2 AND status = 'published'
        RETURNING `+loadColumns,
		id, ownerID, f.Origin, f.Destination, string(f.CargoType), f.WeightKG,
		length, width, height, f.RequiredBy, f.SuggestedRate, f.Requirements, photoArg(f.PhotoURLs), at))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update load %q: %w", id, err)
	}
	return l, nil
}

// Delete removes a published load owned by ownerID that no assignment has ever
// referenced. It returns false if no such row was removed.
func (r *LoadRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        DELETE FROM loads
        WHERE id = $1 AND owner_id = $2 AND status = 'published'
    `, id, ownerID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("delete load %q: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

func scanLoad(row pgx.Row) (*domain.Load, error) {
	var (
		l                     domain.Load
		length, width, height *float64
		cargo, status         string
	)
	err := row.Scan(&l.ID, &l.OwnerID, &l.Origin, &l.Destination, &cargo, &l.WeightKG,
		&length, &width, &height, &l.RequiredBy, &l.SuggestedRate,
		&l.Requirements, &l.PhotoURLs, &status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.CargoType = domain.CargoType(cargo)
	l.Status = domain.LoadStatus(status)
	if length != nil && width != nil && height != nil {
		l.Dimensions = &domain.Dimensions{LengthCM: *length, WidthCM: *width, HeightCM: *height}
	}
	if len(l.PhotoURLs) == 0 {
		l.PhotoURLs = nil
	}
	l.RequiredBy = l.RequiredBy.UTC()
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}

func collectLoads(rows pgx.Rows) ([]domain.Load, error) {
	defer rows.Close()
	out := make([]domain.Load, 0)
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func dimensionArgs(d *domain.Dimensions) (length, width, height *float64) {
	if d == nil {
		return nil, nil, nil
	}
	return &d.LengthCM, &d.WidthCM, &d.HeightCM
}

func photoArg(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
