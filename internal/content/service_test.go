package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/internal/audit"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

type fakeContentRepo struct {
	byID map[uuid.UUID]*models.ContentItem
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{byID: map[uuid.UUID]*models.ContentItem{}}
}

func (f *fakeContentRepo) WithTx(_ *gorm.DB) Repository { return f }

func (f *fakeContentRepo) Create(_ context.Context, item *models.ContentItem) (*models.ContentItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	clone := *item
	f.byID[item.ID] = &clone
	return item, nil
}

func (f *fakeContentRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ContentItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "content item not found")
	}
	clone := *item
	return &clone, nil
}

func (f *fakeContentRepo) List(_ context.Context, params listContentParams) ([]models.ContentItem, error) {
	var out []models.ContentItem
	for _, item := range f.byID {
		if params.PublishedOnly && !item.Published {
			continue
		}
		if params.Kind != nil && item.Kind != *params.Kind {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeContentRepo) Update(_ context.Context, item *models.ContentItem) error {
	clone := *item
	f.byID[item.ID] = &clone
	return nil
}

func (f *fakeContentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeTeamRepo struct {
	byID map[uuid.UUID]*models.TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{byID: map[uuid.UUID]*models.TeamMember{}}
}

func (f *fakeTeamRepo) WithTx(_ *gorm.DB) TeamRepository { return f }

func (f *fakeTeamRepo) Create(_ context.Context, member *models.TeamMember) (*models.TeamMember, error) {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	clone := *member
	f.byID[member.ID] = &clone
	return member, nil
}

func (f *fakeTeamRepo) FindByID(_ context.Context, id uuid.UUID) (*models.TeamMember, error) {
	member, ok := f.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team member not found")
	}
	clone := *member
	return &clone, nil
}

func (f *fakeTeamRepo) List(_ context.Context) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, member := range f.byID {
		out = append(out, *member)
	}
	return out, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, member *models.TeamMember) error {
	clone := *member
	f.byID[member.ID] = &clone
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeActorLoader struct {
	actor *models.AdminUser
}

func (f *fakeActorLoader) FindByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	if f.actor == nil || f.actor.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
	}
	return f.actor, nil
}

type recordingAudit struct {
	entries []audit.Entry
}

func (r *recordingAudit) Record(_ context.Context, _ *gorm.DB, entry audit.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

type passthroughTxRunner struct{}

func (passthroughTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeSigner struct {
	bucket string
	err    error
	object string
}

func (f *fakeSigner) SignedURL(_, object, _ string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.object = object
	return "https://signed.example/" + object, nil
}

func (f *fakeSigner) DefaultBucket() string { return f.bucket }

type contentFixture struct {
	svc      Service
	repo     *fakeContentRepo
	teamRepo *fakeTeamRepo
	recorder *recordingAudit
	actor    *models.AdminUser
}

func newContentFixture(t *testing.T, signer uploadSigner) contentFixture {
	t.Helper()

	actor := &models.AdminUser{
		ID:          uuid.New(),
		Email:       "content@hopewellfoundation.org",
		DisplayName: "Content Admin",
		Role:        enums.AdminRoleContent,
		Active:      true,
	}
	repo := newFakeContentRepo()
	teamRepo := newFakeTeamRepo()
	recorder := &recordingAudit{}
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		TeamRepo: teamRepo,
		Admins:   &fakeActorLoader{actor: actor},
		Audit:    recorder,
		TxRunner: passthroughTxRunner{},
		Signer:   signer,
	})
	require.NoError(t, err)
	return contentFixture{svc: svc, repo: repo, teamRepo: teamRepo, recorder: recorder, actor: actor}
}

func TestCreateContentAudits(t *testing.T) {
	fx := newContentFixture(t, nil)

	item, err := fx.svc.CreateContent(context.Background(), fx.actor.ID, CreateContentInput{
		Kind:     enums.ContentKindVideo,
		Title:    "Borehole commissioning",
		MediaURL: "https://storage.googleapis.com/hopewell-media/content/video/x/y.mp4",
	})
	require.NoError(t, err)
	require.NotNil(t, item)

	require.Len(t, fx.recorder.entries, 1)
	assert.Equal(t, enums.AuditContentCreated, fx.recorder.entries[0].Action)
	assert.Equal(t, item.ID.String(), fx.recorder.entries[0].EntityID)
}

func TestCreateContentValidation(t *testing.T) {
	fx := newContentFixture(t, nil)

	_, err := fx.svc.CreateContent(context.Background(), fx.actor.ID, CreateContentInput{
		Kind:  enums.ContentKind("poster"),
		Title: "x", MediaURL: "https://example.com/x",
	})
	require.Error(t, err)

	_, err = fx.svc.CreateContent(context.Background(), fx.actor.ID, CreateContentInput{
		Kind: enums.ContentKindVideo, Title: "  ", MediaURL: "https://example.com/x",
	})
	require.Error(t, err)
	assert.Empty(t, fx.recorder.entries)
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	fx := newContentFixture(t, nil)
	ctx := context.Background()

	published, err := fx.svc.CreateContent(ctx, fx.actor.ID, CreateContentInput{
		Kind: enums.ContentKindEbook, Title: "Annual report", MediaURL: "https://example.com/report.pdf", Published: true,
	})
	require.NoError(t, err)
	_, err = fx.svc.CreateContent(ctx, fx.actor.ID, CreateContentInput{
		Kind: enums.ContentKindEbook, Title: "Draft report", MediaURL: "https://example.com/draft.pdf",
	})
	require.NoError(t, err)

	items, err := fx.svc.ListPublished(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, published.ID, items[0].ID)

	all, err := fx.svc.ListAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateContentPublishToggleAudits(t *testing.T) {
	fx := newContentFixture(t, nil)
	ctx := context.Background()

	item, err := fx.svc.CreateContent(ctx, fx.actor.ID, CreateContentInput{
		Kind: enums.ContentKindAudio, Title: "Gala recording", MediaURL: "https://example.com/gala.mp3",
	})
	require.NoError(t, err)

	publish := true
	updated, err := fx.svc.UpdateContent(ctx, fx.actor.ID, item.ID, UpdateContentInput{Published: &publish})
	require.NoError(t, err)
	assert.True(t, updated.Published)
	require.Len(t, fx.recorder.entries, 2)
	assert.Equal(t, enums.AuditContentUpdated, fx.recorder.entries[1].Action)
}

func TestDeleteContentRemovesAndAudits(t *testing.T) {
	fx := newContentFixture(t, nil)
	ctx := context.Background()

	item, err := fx.svc.CreateContent(ctx, fx.actor.ID, CreateContentInput{
		Kind: enums.ContentKindGallery, Title: "Outreach photos", MediaURL: "https://example.com/p.png",
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteContent(ctx, fx.actor.ID, item.ID))
	_, err = fx.repo.FindByID(ctx, item.ID)
	require.Error(t, err)
	assert.Equal(t, enums.AuditContentDeleted, fx.recorder.entries[len(fx.recorder.entries)-1].Action)
}

func TestTeamMemberLifecycle(t *testing.T) {
	fx := newContentFixture(t, nil)
	ctx := context.Background()

	member, err := fx.svc.CreateTeamMember(ctx, fx.actor.ID, CreateTeamMemberInput{
		Name: "Adaeze U.", Title: "Executive Director", SortOrder: 1,
	})
	require.NoError(t, err)

	newTitle := "Founder"
	updated, err := fx.svc.UpdateTeamMember(ctx, fx.actor.ID, member.ID, UpdateTeamMemberInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Founder", updated.Title)

	require.NoError(t, fx.svc.DeleteTeamMember(ctx, fx.actor.ID, member.ID))

	actions := make([]enums.AuditAction, 0, len(fx.recorder.entries))
	for _, entry := range fx.recorder.entries {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []enums.AuditAction{
		enums.AuditTeamMemberCreated,
		enums.AuditTeamMemberUpdated,
		enums.AuditTeamMemberDeleted,
	}, actions)
}

func TestMutationsRequireKnownActor(t *testing.T) {
	fx := newContentFixture(t, nil)

	_, err := fx.svc.CreateContent(context.Background(), uuid.New(), CreateContentInput{
		Kind: enums.ContentKindVideo, Title: "x", MediaURL: "https://example.com/x",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestPresignUploadMintsServerSideKey(t *testing.T) {
	signer := &fakeSigner{bucket: "hopewell-media"}
	fx := newContentFixture(t, signer)

	out, err := fx.svc.PresignUpload(context.Background(), PresignInput{
		Kind:     enums.ContentKindVideo,
		FileName: "../borehole launch.mp4",
		MimeType: "video/mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, out.StorageKey, signer.object)
	assert.Contains(t, out.StorageKey, "content/video/")
	assert.Contains(t, out.StorageKey, "borehole-launch.mp4")
	assert.NotContains(t, out.StorageKey, "..")
	assert.Contains(t, out.PublicURL, "hopewell-media")
}

func TestPresignUploadRejectsMismatchedMime(t *testing.T) {
	signer := &fakeSigner{bucket: "hopewell-media"}
	fx := newContentFixture(t, signer)

	_, err := fx.svc.PresignUpload(context.Background(), PresignInput{
		Kind:     enums.ContentKindEbook,
		FileName: "report.pdf",
		MimeType: "video/mp4",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestPresignUploadWithoutSignerIsUnavailable(t *testing.T) {
	fx := newContentFixture(t, nil)

	_, err := fx.svc.PresignUpload(context.Background(), PresignInput{
		Kind:     enums.ContentKindVideo,
		FileName: "x.mp4",
		MimeType: "video/mp4",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
