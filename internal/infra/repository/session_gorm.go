package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/session"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Order("booking_time ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) ListUnlinkedSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Where("client_id IS NULL").
		Order("booking_time ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) ListSessionsForClient(ctx context.Context, clientID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("booking_time DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) LinkSession(ctx context.Context, link domain.Link) error {
	res := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", link.SessionID).
		Updates(map[string]any{
			"client_id":   link.ClientID,
			"client_name": link.ClientName,
			"dog_name":    link.DogName,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Introspection
// --------------------------------------------------

func (r *SessionGormRepository) tableInfo(model any, name string) (domain.TableInfo, error) {
	cols, err := r.db.Migrator().ColumnTypes(model)
	if err != nil {
		return domain.TableInfo{}, err
	}

	info := domain.TableInfo{Name: name, Columns: make([]domain.ColumnInfo, 0, len(cols))}
	for _, c := range cols {
		nullable, _ := c.Nullable()
		info.Columns = append(info.Columns, domain.ColumnInfo{
			Name:     c.Name(),
			Type:     c.DatabaseTypeName(),
			Nullable: nullable,
		})
	}
	return info, nil
}

func (r *SessionGormRepository) Inspect(ctx context.Context) (*domain.Inspection, error) {
	db := r.db.WithContext(ctx)
	out := &domain.Inspection{}

	sessionsTable, err := r.tableInfo(&models.Session{}, "sessions")
	if err != nil {
		return nil, err
	}
	clientsTable, err := r.tableInfo(&models.Client{}, "clients")
	if err != nil {
		return nil, err
	}
	out.Tables = []domain.TableInfo{sessionsTable, clientsTable}

	if err := db.Model(&models.Session{}).Count(&out.SessionCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Client{}).Count(&out.ClientCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Session{}).
		Where("client_id IS NULL").
		Count(&out.UnlinkedSessions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Session{}).
		Where("email IS NOT NULL AND TRIM(email) <> ''").
		Count(&out.SessionsWithEmail).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
