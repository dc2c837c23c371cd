package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/intake"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type IntakeGormRepository struct {
	db *gorm.DB
}

func NewIntakeGormRepository(db *gorm.DB) *IntakeGormRepository {
	return &IntakeGormRepository{db: db}
}

func (r *IntakeGormRepository) CreateBrief(ctx context.Context, b *models.BehaviouralBrief) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *IntakeGormRepository) CreateQuestionnaire(ctx context.Context, q *models.BehaviourQuestionnaire) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *IntakeGormRepository) GetBrief(ctx context.Context, id uint) (*models.BehaviouralBrief, error) {
	var b models.BehaviouralBrief
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *IntakeGormRepository) GetQuestionnaire(ctx context.Context, id uint) (*models.BehaviourQuestionnaire, error) {
	var q models.BehaviourQuestionnaire
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &q, nil
}

// Compile-time check
var _ domain.Repository = (*IntakeGormRepository)(nil)
