package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/jobs"
	"github.com/noah-isme/easycd-api/pkg/storage"
)

type activityRepository interface {
	List(ctx context.Context, filter models.ComplementaryActivityFilter) ([]models.ComplementaryActivity, int, error)
	FindByID(ctx context.Context, id string) (*models.ComplementaryActivity, error)
	Create(ctx context.Context, activity *models.ComplementaryActivity) error
	Update(ctx context.Context, activity *models.ComplementaryActivity) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type activityTypeRefs interface {
	FindByID(ctx context.Context, id string) (*models.ComplementaryActivityType, error)
	AddActivity(ctx context.Context, typeID, activityID string) error
	RemoveActivity(ctx context.Context, typeID, activityID string) error
}

type activityPersonRefs interface {
	FindByID(ctx context.Context, id string) (*models.Person, error)
	AddComplementaryActivity(ctx context.Context, personID, activityID string) error
	RemoveComplementaryActivity(ctx context.Context, personID, activityID string) error
}

type evidenceStorage interface {
	SaveStream(relPath string, r io.Reader, maxBytes int64) (int64, error)
	Open(relPath string) (*os.File, error)
	Delete(relPath string) error
}

type evidencePurgeQueue interface {
	Enqueue(job jobs.Job) error
}

// EvidencePurgeJob is the job kind for deleting stale evidence files.
const EvidencePurgeJob = "evidence.purge"

// EvidenceConfig bounds uploaded evidence files.
type EvidenceConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// EvidenceFile is an opened evidence file ready to stream.
type EvidenceFile struct {
	File        *os.File
	ContentType string
	Name        string
}

// ComplementaryActivityService manages student activities, their review and evidence files.
type ComplementaryActivityService struct {
	repo      activityRepository
	types     activityTypeRefs
	people    activityPersonRefs
	storage   evidenceStorage
	purge     evidencePurgeQueue
	signer    *storage.SignedURLSigner
	evidence  EvidenceConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewComplementaryActivityService constructs a ComplementaryActivityService.
func NewComplementaryActivityService(repo activityRepository, types activityTypeRefs, people activityPersonRefs, files evidenceStorage, signer *storage.SignedURLSigner, evidence EvidenceConfig, validate *validator.Validate, logger *zap.Logger) *ComplementaryActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplementaryActivityService{
		repo:      repo,
		types:     types,
		people:    people,
		storage:   files,
		signer:    signer,
		evidence:  evidence,
		validator: defaultValidator(validate),
		logger:    logger,
	}
}

// UsePurgeQueue routes stale evidence deletion through a background queue.
func (s *ComplementaryActivityService) UsePurgeQueue(q evidencePurgeQueue) {
	s.purge = q
}

// PurgeEvidence handles EvidencePurgeJob jobs.
func (s *ComplementaryActivityService) PurgeEvidence(_ context.Context, job jobs.Job) error {
	if job.Kind != EvidencePurgeJob {
		return fmt.Errorf("unexpected job kind %q", job.Kind)
	}
	return s.storage.Delete(job.Payload)
}

func (s *ComplementaryActivityService) discardEvidence(activityID, relPath string) {
	if relPath == "" || s.storage == nil {
		return
	}
	if s.purge != nil {
		err := s.purge.Enqueue(jobs.Job{ID: uuid.NewString(), Kind: EvidencePurgeJob, Payload: relPath})
		if err == nil {
			return
		}
		s.logger.Warn("evidence purge not queued", zap.String("activity_id", activityID), zap.Error(err))
	}
	if err := s.storage.Delete(relPath); err != nil {
		s.logger.Warn("failed to delete evidence file", zap.String("activity_id", activityID), zap.Error(err))
	}
}

// List returns paginated activities. Students only see their own.
func (s *ComplementaryActivityService) List(ctx context.Context, filter models.ComplementaryActivityFilter, actor *models.JWTClaims) ([]models.ComplementaryActivity, *models.Pagination, error) {
	if actor != nil && actor.Role == models.RoleStudent {
		filter.StudentID = actor.PersonID
	}
	filter.Normalize()
	activities, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list complementary activities")
	}
	return activities, filter.Pagination(total), nil
}

// Get returns an activity by ID.
func (s *ComplementaryActivityService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.ComplementaryActivity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "complementary activity")
	}
	if err := ownedBy(actor, activity.StudentID); err != nil {
		return nil, err
	}
	return activity, nil
}

// Create submits an unreviewed activity and appends it to its type and student.
func (s *ComplementaryActivityService) Create(ctx context.Context, req dto.CreateComplementaryActivityRequest, actor *models.JWTClaims) (*models.ComplementaryActivity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	studentID, err := resolveStudent(actor, req.StudentID)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.types.FindByID(gctx, req.TypeID); err != nil {
			return lookupError(err, "complementary activity type")
		}
		return nil
	})
	g.Go(func() error {
		_, err := requirePerson(gctx, s.people, studentID, "student", models.RoleStudent)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	activity := &models.ComplementaryActivity{
		TypeID:      req.TypeID,
		StudentID:   studentID,
		Description: req.Description,
		Evidence:    req.Evidence,
		Quantity:    req.Quantity,
		Status:      models.ActivityPending,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, appErrors.Internal(err, "failed to create complementary activity")
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.types.AddActivity(gctx, activity.TypeID, activity.ID) })
	g.Go(func() error { return s.people.AddComplementaryActivity(gctx, activity.StudentID, activity.ID) })
	if err := g.Wait(); err != nil {
		return nil, appErrors.Internal(err, "failed to link complementary activity")
	}
	return activity, nil
}

// Update applies sparse changes. Students may only edit their own unreviewed activities.
func (s *ComplementaryActivityService) Update(ctx context.Context, id string, req dto.UpdateComplementaryActivityRequest, actor *models.JWTClaims) (*models.ComplementaryActivity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	activity, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := lockedAfterReview(activity, actor); err != nil {
		return nil, err
	}

	changed := applyField(&activity.Description, req.Description, true)
	changed = applyField(&activity.Evidence, req.Evidence, true) || changed
	changed = applyField(&activity.Quantity, req.Quantity, false) || changed

	previousType := activity.TypeID
	if req.TypeID != nil && *req.TypeID != "" && *req.TypeID != previousType {
		if _, err := s.types.FindByID(ctx, *req.TypeID); err != nil {
			return nil, lookupError(err, "complementary activity type")
		}
		activity.TypeID = *req.TypeID
		changed = true
	}
	if !changed {
		return activity, nil
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, appErrors.Internal(err, "failed to update complementary activity")
	}
	if previousType != activity.TypeID {
		if err := moveRef(ctx, s.types.RemoveActivity, s.types.AddActivity, previousType, activity.TypeID, activity.ID); err != nil {
			return nil, appErrors.Internal(err, "failed to move complementary activity between types")
		}
	}
	return activity, nil
}

// Review records the teacher's decision.
func (s *ComplementaryActivityService) Review(ctx context.Context, id string, req dto.ReviewComplementaryActivityRequest) (*models.ComplementaryActivity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "complementary activity")
	}
	activity.Status = models.ActivityStatus(req.Status)
	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, appErrors.Internal(err, "failed to review complementary activity")
	}
	return activity, nil
}

// Delete pulls the activity from its type and student, soft-deletes it and drops its evidence file.
func (s *ComplementaryActivityService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	activity, err := s.Get(ctx, id, actor)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.types.RemoveActivity(gctx, activity.TypeID, activity.ID) })
	g.Go(func() error { return s.people.RemoveComplementaryActivity(gctx, activity.StudentID, activity.ID) })
	if err := g.Wait(); err != nil {
		return appErrors.Internal(err, "failed to unlink complementary activity")
	}

	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "complementary activity")
	}
	s.discardEvidence(id, activity.EvidenceFile)
	return nil
}

// UploadEvidence stores the evidence file of an activity, replacing any previous one.
func (s *ComplementaryActivityService) UploadEvidence(ctx context.Context, id, filename, contentType string, r io.Reader, actor *models.JWTClaims) (*models.ComplementaryActivity, error) {
	activity, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := lockedAfterReview(activity, actor); err != nil {
		return nil, err
	}
	mediaType, err := s.allowedMIME(filename, contentType)
	if err != nil {
		return nil, err
	}

	relPath := path.Join("activities", activity.ID, uuid.NewString()+path.Ext(filename))
	if _, err := s.storage.SaveStream(relPath, r, s.evidence.MaxFileSizeBytes); err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds size limit")
		}
		return nil, appErrors.Internal(err, "failed to store evidence")
	}

	previous := activity.EvidenceFile
	activity.EvidenceFile = relPath
	activity.EvidenceMIME = mediaType
	if err := s.repo.Update(ctx, activity); err != nil {
		_ = s.storage.Delete(relPath)
		return nil, appErrors.Internal(err, "failed to update complementary activity")
	}
	s.discardEvidence(id, previous)
	return activity, nil
}

// EvidenceToken issues a short-lived signed token for downloading the evidence.
func (s *ComplementaryActivityService) EvidenceToken(ctx context.Context, id string, actor *models.JWTClaims) (string, *storage.SignedToken, error) {
	activity, err := s.Get(ctx, id, actor)
	if err != nil {
		return "", nil, err
	}
	if activity.EvidenceFile == "" {
		return "", nil, appErrors.NotFound("evidence")
	}
	token, expiresAt, err := s.signer.Generate(activity.ID, activity.EvidenceFile)
	if err != nil {
		return "", nil, appErrors.Internal(err, "failed to sign evidence url")
	}
	return token, &storage.SignedToken{ResourceID: activity.ID, Path: activity.EvidenceFile, ExpiresAt: expiresAt}, nil
}

// OpenEvidence verifies a download token and opens the evidence file. The caller closes the file.
func (s *ComplementaryActivityService) OpenEvidence(ctx context.Context, id, token string) (*EvidenceFile, error) {
	parsed, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrExpiredToken) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "download token expired")
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	if parsed.ResourceID != id {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "complementary activity")
	}
	if activity.EvidenceFile == "" || activity.EvidenceFile != parsed.Path {
		return nil, appErrors.NotFound("evidence")
	}
	file, err := s.storage.Open(activity.EvidenceFile)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to open evidence")
	}
	return &EvidenceFile{File: file, ContentType: activity.EvidenceMIME, Name: path.Base(activity.EvidenceFile)}, nil
}

func (s *ComplementaryActivityService) allowedMIME(filename, contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mime.TypeByExtension(strings.ToLower(path.Ext(filename)))
		if parsed, _, perr := mime.ParseMediaType(mediaType); perr == nil {
			mediaType = parsed
		}
	}
	if len(s.evidence.AllowedMIMEs) == 0 {
		return mediaType, nil
	}
	for _, allowed := range s.evidence.AllowedMIMEs {
		if strings.EqualFold(allowed, mediaType) {
			return mediaType, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrValidation, "file type is not allowed")
}

// lockedAfterReview keeps students from changing an activity once it has been reviewed.
func lockedAfterReview(activity *models.ComplementaryActivity, actor *models.JWTClaims) error {
	if actor != nil && actor.Role == models.RoleStudent && activity.Status != models.ActivityPending {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "complementary activity has already been reviewed")
	}
	return nil
}
