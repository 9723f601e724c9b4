package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/internal/audit"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

const (
	entityContentItem = "content_item"
	entityTeamMember  = "team_member"
)

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type actorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

// Service manages the media library and the team page. Public reads only ever
// see published content; every admin mutation is audited in its transaction.
type Service interface {
	ListPublished(ctx context.Context, kind *enums.ContentKind) ([]models.ContentItem, error)
	ListAll(ctx context.Context, kind *enums.ContentKind) ([]models.ContentItem, error)
	CreateContent(ctx context.Context, actorID uuid.UUID, input CreateContentInput) (*models.ContentItem, error)
	UpdateContent(ctx context.Context, actorID, itemID uuid.UUID, input UpdateContentInput) (*models.ContentItem, error)
	DeleteContent(ctx context.Context, actorID, itemID uuid.UUID) error

	ListTeam(ctx context.Context) ([]models.TeamMember, error)
	CreateTeamMember(ctx context.Context, actorID uuid.UUID, input CreateTeamMemberInput) (*models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, actorID, memberID uuid.UUID, input UpdateTeamMemberInput) (*models.TeamMember, error)
	DeleteTeamMember(ctx context.Context, actorID, memberID uuid.UUID) error

	PresignUpload(ctx context.Context, input PresignInput) (*PresignOutput, error)
}

type service struct {
	repo     Repository
	teamRepo TeamRepository
	admins   actorLoader
	audit    auditRecorder
	txRunner txRunner
	signer   uploadSigner
	logg     *logger.Logger
}

type ServiceParams struct {
	Repo     Repository
	TeamRepo TeamRepository
	Admins   actorLoader
	Audit    auditRecorder
	TxRunner txRunner
	Signer   uploadSigner // optional; presign is disabled without it
	Logger   *logger.Logger
}

func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "content repo required")
	}
	if params.TeamRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "team repo required")
	}
	if params.Admins == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin loader required")
	}
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "audit recorder required")
	}
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{
		repo:     params.Repo,
		teamRepo: params.TeamRepo,
		admins:   params.Admins,
		audit:    params.Audit,
		txRunner: params.TxRunner,
		signer:   params.Signer,
		logg:     params.Logger,
	}, nil
}

func (s *service) ListPublished(ctx context.Context, kind *enums.ContentKind) ([]models.ContentItem, error) {
	items, err := s.repo.List(ctx, listContentParams{Kind: kind, PublishedOnly: true})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list published content")
	}
	return items, nil
}

func (s *service) ListAll(ctx context.Context, kind *enums.ContentKind) ([]models.ContentItem, error) {
	items, err := s.repo.List(ctx, listContentParams{Kind: kind})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list content")
	}
	return items, nil
}

func (s *service) CreateContent(ctx context.Context, actorID uuid.UUID, input CreateContentInput) (*models.ContentItem, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid content kind")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	mediaURL := strings.TrimSpace(input.MediaURL)
	if mediaURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media_url is required")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	item := &models.ContentItem{
		Kind:        input.Kind,
		Title:       title,
		Description: input.Description,
		MediaURL:    mediaURL,
		StorageKey:  input.StorageKey,
		Published:   input.Published,
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		created, createErr := s.repo.WithTx(tx).Create(ctx, item)
		if createErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create content item")
		}
		item = created
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditContentCreated,
			EntityType: entityContentItem,
			EntityID:   item.ID.String(),
			Summary:    fmt.Sprintf("created %s %q", item.Kind, item.Title),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) UpdateContent(ctx context.Context, actorID, itemID uuid.UUID, input UpdateContentInput) (*models.ContentItem, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content id required")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		if title != item.Title {
			item.Title = title
			changed = true
		}
	}
	if input.Description != nil {
		item.Description = input.Description
		changed = true
	}
	if input.MediaURL != nil {
		mediaURL := strings.TrimSpace(*input.MediaURL)
		if mediaURL == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "media_url cannot be empty")
		}
		if mediaURL != item.MediaURL {
			item.MediaURL = mediaURL
			changed = true
		}
	}
	if input.Published != nil && *input.Published != item.Published {
		item.Published = *input.Published
		changed = true
	}
	if !changed {
		return item, nil
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if updateErr := s.repo.WithTx(tx).Update(ctx, item); updateErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, updateErr, "update content item")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditContentUpdated,
			EntityType: entityContentItem,
			EntityID:   item.ID.String(),
			Summary:    fmt.Sprintf("updated %s %q", item.Kind, item.Title),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteContent(ctx context.Context, actorID, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "content id required")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if deleteErr := s.repo.WithTx(tx).Delete(ctx, item.ID); deleteErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, deleteErr, "delete content item")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditContentDeleted,
			EntityType: entityContentItem,
			EntityID:   item.ID.String(),
			Summary:    fmt.Sprintf("deleted %s %q", item.Kind, item.Title),
			Actor:      actor,
		})
	})
}

func (s *service) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	members, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list team members")
	}
	return members, nil
}

func (s *service) CreateTeamMember(ctx context.Context, actorID uuid.UUID, input CreateTeamMemberInput) (*models.TeamMember, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	member := &models.TeamMember{
		Name:      name,
		Title:     title,
		Bio:       input.Bio,
		PhotoURL:  input.PhotoURL,
		SortOrder: input.SortOrder,
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		created, createErr := s.teamRepo.WithTx(tx).Create(ctx, member)
		if createErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create team member")
		}
		member = created
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditTeamMemberCreated,
			EntityType: entityTeamMember,
			EntityID:   member.ID.String(),
			Summary:    fmt.Sprintf("added %s (%s)", member.Name, member.Title),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) UpdateTeamMember(ctx context.Context, actorID, memberID uuid.UUID, input UpdateTeamMemberInput) (*models.TeamMember, error) {
	if memberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team member id required")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	member, err := s.teamRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		if name != member.Name {
			member.Name = name
			changed = true
		}
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		if title != member.Title {
			member.Title = title
			changed = true
		}
	}
	if input.Bio != nil {
		member.Bio = input.Bio
		changed = true
	}
	if input.PhotoURL != nil {
		member.PhotoURL = input.PhotoURL
		changed = true
	}
	if input.SortOrder != nil && *input.SortOrder != member.SortOrder {
		member.SortOrder = *input.SortOrder
		changed = true
	}
	if !changed {
		return member, nil
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if updateErr := s.teamRepo.WithTx(tx).Update(ctx, member); updateErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, updateErr, "update team member")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditTeamMemberUpdated,
			EntityType: entityTeamMember,
			EntityID:   member.ID.String(),
			Summary:    fmt.Sprintf("updated %s", member.Name),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) DeleteTeamMember(ctx context.Context, actorID, memberID uuid.UUID) error {
	if memberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "team member id required")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	member, err := s.teamRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if deleteErr := s.teamRepo.WithTx(tx).Delete(ctx, member.ID); deleteErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, deleteErr, "delete team member")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditTeamMemberDeleted,
			EntityType: entityTeamMember,
			EntityID:   member.ID.String(),
			Summary:    fmt.Sprintf("removed %s", member.Name),
			Actor:      actor,
		})
	})
}

func (s *service) loadActor(ctx context.Context, actorID uuid.UUID) (*models.AdminUser, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin identity")
	}
	actor, err := s.admins.FindByID(ctx, actorID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load acting admin")
	}
	return actor, nil
}
