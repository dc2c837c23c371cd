package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type MembershipGormRepository struct {
	db *gorm.DB
}

func NewMembershipGormRepository(db *gorm.DB) *MembershipGormRepository {
	return &MembershipGormRepository{db: db}
}

func (r *MembershipGormRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Membership, error) {
	var rows []models.Membership
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MembershipGormRepository) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *MembershipGormRepository) ListMembershipsSince(ctx context.Context, since time.Time) ([]models.Membership, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("date >= ?", since.Format("2006-01-02"))
	})
}

func (r *MembershipGormRepository) ListMembershipsBetween(ctx context.Context, from, to time.Time) ([]models.Membership, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("date >= ? AND date < ?", from.Format("2006-01-02"), to.Format("2006-01-02"))
	})
}

func (r *MembershipGormRepository) ListMembershipsForEmail(ctx context.Context, email string) ([]models.Membership, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(TRIM(email)) = ?", strings.ToLower(strings.TrimSpace(email)))
	})
}

func (r *MembershipGormRepository) CreateMembership(ctx context.Context, m *models.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Compile-time check
var _ domain.Repository = (*MembershipGormRepository)(nil)
