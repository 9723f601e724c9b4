package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

// listContentParams narrow the content listing. PublishedOnly is forced on for
// the public site surface.
type listContentParams struct {
	Kind          *enums.ContentKind
	PublishedOnly bool
}

// Repository defines persistence operations on the media library.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.ContentItem) (*models.ContentItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContentItem, error)
	List(ctx context.Context, params listContentParams) ([]models.ContentItem, error)
	Update(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a content repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.ContentItem) (*models.ContentItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.ContentItem, error) {
	var item models.ContentItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "content item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listContentParams) ([]models.ContentItem, error) {
	query := r.db.WithContext(ctx).Model(&models.ContentItem{})
	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}
	if params.PublishedOnly {
		query = query.Where("published = ?", true)
	}

	var items []models.ContentItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) Update(ctx context.Context, item *models.ContentItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContentItem{}).Error
}

// TeamRepository defines persistence operations on the team page roster.
type TeamRepository interface {
	WithTx(tx *gorm.DB) TeamRepository
	Create(ctx context.Context, member *models.TeamMember) (*models.TeamMember, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	List(ctx context.Context) ([]models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type teamRepositoryImpl struct {
	db *gorm.DB
}

// NewTeamRepository returns a team repository bound to the provided database.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepositoryImpl{db: db}
}

func (r *teamRepositoryImpl) WithTx(tx *gorm.DB) TeamRepository {
	if tx == nil {
		return r
	}
	return &teamRepositoryImpl{db: tx}
}

func (r *teamRepositoryImpl) Create(ctx context.Context, member *models.TeamMember) (*models.TeamMember, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *teamRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team member not found")
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepositoryImpl) List(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepositoryImpl) Update(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *teamRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TeamMember{}).Error
}
