package repositories

import (
	"context"
	"errors"

	"smartstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SettingsRepository interface {
	Get(ctx context.Context, businessID uuid.UUID) (*models.BusinessSettings, error)
	Upsert(ctx context.Context, settings *models.BusinessSettings) error
	SetLogoKey(ctx context.Context, businessID uuid.UUID, logoKey string) error
	ListBusinessIDs(ctx context.Context) ([]uuid.UUID, error)
	PurgeBusinessData(ctx context.Context, businessID uuid.UUID) error
}

type settingsRepo struct {
	db Database
}

func NewSettingsRepository(db Database) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, businessID uuid.UUID) (*models.BusinessSettings, error) {
	settings := &models.BusinessSettings{}
	query := `
		SELECT business_id, business_name, address, phone, logo_key, updated_at
		FROM business_settings
		WHERE business_id = $1
	`
	err := r.db.QueryRow(ctx, query, businessID).Scan(&settings.BusinessID, &settings.BusinessName, &settings.Address, &settings.Phone, &settings.LogoKey, &settings.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert updates the business row if present, inserts it otherwise.
func (r *settingsRepo) Upsert(ctx context.Context, settings *models.BusinessSettings) error {
	updateQuery := `
		UPDATE business_settings
		SET business_name = $1, address = $2, phone = $3, updated_at = NOW()
		WHERE business_id = $4
	`
	tag, err := r.db.Exec(ctx, updateQuery, settings.BusinessName, settings.Address, settings.Phone, settings.BusinessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO business_settings (business_id, business_name, address, phone, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err = r.db.Exec(ctx, insertQuery, settings.BusinessID, settings.BusinessName, settings.Address, settings.Phone)
	return err
}

func (r *settingsRepo) SetLogoKey(ctx context.Context, businessID uuid.UUID, logoKey string) error {
	query := `UPDATE business_settings SET logo_key = $1, updated_at = NOW() WHERE business_id = $2`
	tag, err := r.db.Exec(ctx, query, logoKey, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *settingsRepo) ListBusinessIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT business_id FROM business_settings ORDER BY business_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PurgeBusinessData clears the transactional tables for one business. The
// table list is fixed; settings and users survive a reset. Child tables go
// first so the deletes hold under foreign keys.
func (r *settingsRepo) PurgeBusinessData(ctx context.Context, businessID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{"sale_items", "sales", "products", "suppliers", "customers"}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE business_id = $1`, businessID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
