package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// likeEscaper escapes LIKE wildcards; Postgres uses backslash by default.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// --------------------------------------------------
// Source lookups (newest first)
// --------------------------------------------------

func (r *ClientGormRepository) find(ctx context.Context, query string, args ...any) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC, id DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) ClientsByEmail(ctx context.Context, email string) ([]models.Client, error) {
	return r.find(ctx, "LOWER(TRIM(contact_email)) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *ClientGormRepository) ClientsByPhone(ctx context.Context, phone string) ([]models.Client, error) {
	return r.find(ctx, "contact_number = ?", phone)
}

func (r *ClientGormRepository) ClientsByFirstName(ctx context.Context, fragment string) ([]models.Client, error) {
	return r.find(ctx, "LOWER(owner_first_name) LIKE ?", containsPattern(fragment))
}

func (r *ClientGormRepository) ClientsByDogName(ctx context.Context, dogName string) ([]models.Client, error) {
	return r.find(ctx, "dog_name = ?", dogName)
}

// --------------------------------------------------
// Bulk
// --------------------------------------------------

// ListClients returns every client in store (id) order.
func (r *ClientGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) SearchClients(ctx context.Context, query string) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{})

	if query = strings.TrimSpace(query); query != "" {
		like := containsPattern(query)
		q = q.Where(
			"LOWER(owner_first_name) LIKE ? OR LOWER(owner_last_name) LIKE ? OR LOWER(contact_email) LIKE ? OR LOWER(dog_name) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Single record
// --------------------------------------------------

func (r *ClientGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) UpdateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteClient removes the client and unlinks its sessions. Sessions are
// kept.
func (r *ClientGormRepository) DeleteClient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Session{}).
			Where("client_id = ?", id).
			Update("client_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrClientNotFound
		}
		return nil
	})
}

func (r *ClientGormRepository) SetMembership(ctx context.Context, id uint, isMember bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("is_member", isMember)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
