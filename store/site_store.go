package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/irwanphan/tunggu.online/models"
)

// ErrSiteNotFound covers both a missing site and a site owned by somebody
// else; callers must not be able to tell the two apart.
var ErrSiteNotFound = errors.New("site not found")

type SiteStore struct {
	db *sql.DB
}

func NewSiteStore(db *sql.DB) *SiteStore {
	return &SiteStore{db: db}
}

// CreateSite registers a new tracked site for an owner.
func (s *SiteStore) CreateSite(ctx context.Context, name, domain string, ownerID int) (*models.Site, error) {
	site := &models.Site{}
	query := `
		INSERT INTO sites (id, name, domain, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, domain, owner_id, created_at;
	`
	err := s.db.QueryRowContext(ctx, query, uuid.New().String(), name, domain, ownerID).Scan(
		&site.ID,
		&site.Name,
		&site.Domain,
		&site.OwnerID,
		&site.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create site: %w", err)
	}
	return site, nil
}

// ListSitesByOwner returns the owner's sites, newest first.
func (s *SiteStore) ListSitesByOwner(ctx context.Context, ownerID int) ([]models.Site, error) {
	query := `
		SELECT id, name, domain, owner_id, created_at
		FROM sites
		WHERE owner_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []models.Site
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Domain, &site.OwnerID, &site.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sites: %w", err)
	}
	return sites, nil
}

// SiteExists reports whether a site id is known, regardless of owner.
// Ingestion uses it to reject events for nonexistent sites.
func (s *SiteStore) SiteExists(ctx context.Context, siteID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sites WHERE id = $1;`, siteID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check site existence: %w", err)
	}
	return true, nil
}

// GetSiteForOwner fetches a site only when the given user owns it.
func (s *SiteStore) GetSiteForOwner(ctx context.Context, siteID string, ownerID int) (*models.Site, error) {
	site := &models.Site{}
	query := `
		SELECT id, name, domain, owner_id, created_at
		FROM sites
		WHERE id = $1 AND owner_id = $2;
	`
	err := s.db.QueryRowContext(ctx, query, siteID, ownerID).Scan(
		&site.ID,
		&site.Name,
		&site.Domain,
		&site.OwnerID,
		&site.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("failed to get site for owner: %w", err)
	}
	return site, nil
}
