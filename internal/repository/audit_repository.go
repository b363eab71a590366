package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

// ErrAuditNotFound is returned when no audit has the requested ID.
var ErrAuditNotFound = errors.New("audit not found")

// AuditRepository defines DB ops around stored audits.
type AuditRepository interface {
	Create(a *model.Audit) error
	FindByID(id string) (*model.Audit, error)
	List(p Pagination) ([]model.Audit, error)
	Count() (int, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(a *model.Audit) error {
	return r.db.Create(a).Error
}

func (r *auditRepo) FindByID(id string) (*model.Audit, error) {
	var a model.Audit
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, id)
		}
		return nil, err
	}
	return &a, nil
}

// List returns a page of audits, newest first.
func (r *auditRepo) List(p Pagination) ([]model.Audit, error) {
	var audits []model.Audit
	err := r.db.
		Order("created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&audits).Error
	return audits, err
}

func (r *auditRepo) Count() (int, error) {
	var n int64
	if err := r.db.Model(&model.Audit{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
