package audit

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Entry describes one privileged mutation to record. Actor identity is
// snapshotted from the acting admin's live record.
type Entry struct {
	Action     enums.AuditAction
	EntityType string
	EntityID   string
	Summary    string
	Actor      *models.AdminUser
}

// Service records and reads the audit trail. Record runs inside the caller's
// transaction so a mutation and its audit entry commit or roll back together.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
	List(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type service struct {
	repo Repository
}

type ServiceParams struct {
	Repo Repository
}

func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "audit repo required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, entry Entry) error {
	if entry.Action == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "audit action required")
	}
	if entry.Actor == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "audit actor required")
	}
	if strings.TrimSpace(entry.EntityType) == "" || strings.TrimSpace(entry.EntityID) == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "audit entity required")
	}

	record := &models.AuditLog{
		Action:     entry.Action,
		EntityType: strings.TrimSpace(entry.EntityType),
		EntityID:   strings.TrimSpace(entry.EntityID),
		Summary:    strings.TrimSpace(entry.Summary),
		ActorID:    entry.Actor.ID,
		ActorEmail: entry.Actor.Email,
		ActorName:  entry.Actor.DisplayName,
	}

	if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write audit entry")
	}
	return nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}
	return entries, nil
}
