package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/jobs"
	"github.com/noah-isme/easycd-api/pkg/storage"
)

type activityFixture struct {
	people     *fakePeople
	types      *fakeActivityTypes
	activities *fakeActivities
	files      *storage.LocalStorage
	svc        *ComplementaryActivityService
	typeSvc    *ComplementaryActivityTypeService
}

func newActivityFixture(t *testing.T) *activityFixture {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	f := &activityFixture{
		people:     newFakePeople(student("s-1"), student("s-2"), teacher("t-1")),
		types:      newFakeActivityTypes(models.ComplementaryActivityType{ID: "type-1", Name: "Lecture", Score: 2, MaxScore: 10}),
		activities: newFakeActivities(),
		files:      files,
	}
	f.svc = NewComplementaryActivityService(f.activities, f.types, f.people, files,
		storage.NewSignedURLSigner("secret", time.Minute),
		EvidenceConfig{MaxFileSizeBytes: 16, AllowedMIMEs: []string{"application/pdf", "image/png"}}, nil, nil)
	f.typeSvc = NewComplementaryActivityTypeService(f.types, f.activities, f.svc, nil, nil, nil)
	return f
}

func TestActivityCreateDefaultsStudentToCaller(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	activity, err := f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 3}, claimsFor("s-1", models.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, "s-1", activity.StudentID)
	assert.Equal(t, models.ActivityPending, activity.Status)
	assert.Equal(t, []string{activity.ID}, []string(f.types.row("type-1").Activities))
	assert.Equal(t, []string{activity.ID}, []string(f.people.row("s-1").ComplementaryActivities))

	_, err = f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", StudentID: "s-2", Quantity: 1}, claimsFor("s-1", models.RoleStudent))
	assert.Equal(t, 403, appErrors.FromError(err).Status)

	_, err = f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 1}, claimsFor("t-1", models.RoleAdmin))
	assert.Equal(t, "student_id is required", appErrors.FromError(err).Message)

	_, err = f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "missing", Quantity: 1}, claimsFor("s-1", models.RoleStudent))
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestActivityReviewLocksStudentEdits(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	owner := claimsFor("s-1", models.RoleStudent)

	activity, err := f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 3}, owner)
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, activity.ID, dto.ReviewComplementaryActivityRequest{Status: "Maybe"})
	assert.Equal(t, "status is invalid", appErrors.FromError(err).Message)

	reviewed, err := f.svc.Review(ctx, activity.ID, dto.ReviewComplementaryActivityRequest{Status: "Accepted"})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityAccepted, reviewed.Status)

	description := "new"
	_, err = f.svc.Update(ctx, activity.ID, dto.UpdateComplementaryActivityRequest{Description: &description}, owner)
	assert.Equal(t, 412, appErrors.FromError(err).Status)

	_, err = f.svc.UploadEvidence(ctx, activity.ID, "swap.pdf", "application/pdf", strings.NewReader("%PDF"), owner)
	assert.Equal(t, 412, appErrors.FromError(err).Status)
	assert.Empty(t, f.activities.row(activity.ID).EvidenceFile)

	updated, err := f.svc.UploadEvidence(ctx, activity.ID, "proof.pdf", "application/pdf", strings.NewReader("%PDF"), claimsFor("a-1", models.RoleAdmin))
	require.NoError(t, err)
	assert.NotEmpty(t, updated.EvidenceFile)

	_, err = f.svc.Get(ctx, activity.ID, claimsFor("s-2", models.RoleStudent))
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestActivityTypeDeleteCascades(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 1}, claimsFor("s-1", models.RoleStudent))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 1}, claimsFor("s-2", models.RoleStudent))
	require.NoError(t, err)

	require.NoError(t, f.typeSvc.Delete(ctx, "type-1", claimsFor("admin", models.RoleAdmin)))
	assert.True(t, f.activities.row(first.ID).Deleted)
	assert.True(t, f.activities.row(second.ID).Deleted)
	assert.Empty(t, f.people.row("s-1").ComplementaryActivities)
	assert.Empty(t, f.people.row("s-2").ComplementaryActivities)
	assert.True(t, f.types.row("type-1").Deleted)
}

func TestActivityEvidenceRoundTrip(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	owner := claimsFor("s-1", models.RoleStudent)

	activity, err := f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 1}, owner)
	require.NoError(t, err)

	_, _, err = f.svc.EvidenceToken(ctx, activity.ID, owner)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	_, err = f.svc.UploadEvidence(ctx, activity.ID, "notes.txt", "text/plain", strings.NewReader("hi"), owner)
	assert.Equal(t, "file type is not allowed", appErrors.FromError(err).Message)

	_, err = f.svc.UploadEvidence(ctx, activity.ID, "big.pdf", "application/pdf", strings.NewReader(strings.Repeat("x", 32)), owner)
	assert.Equal(t, "file exceeds size limit", appErrors.FromError(err).Message)

	updated, err := f.svc.UploadEvidence(ctx, activity.ID, "proof.pdf", "", strings.NewReader("%PDF-1.4"), owner)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", updated.EvidenceMIME)

	token, signed, err := f.svc.EvidenceToken(ctx, activity.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, activity.ID, signed.ResourceID)

	file, err := f.svc.OpenEvidence(ctx, activity.ID, token)
	require.NoError(t, err)
	defer file.File.Close()
	body, err := io.ReadAll(file.File)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, "application/pdf", file.ContentType)

	_, err = f.svc.OpenEvidence(ctx, "other", token)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
	_, err = f.svc.OpenEvidence(ctx, activity.ID, token+"x")
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

type purgeQueueStub struct {
	jobs []jobs.Job
}

func (q *purgeQueueStub) Enqueue(job jobs.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func TestActivityReplacedEvidenceIsQueuedForPurge(t *testing.T) {
	f := newActivityFixture(t)
	queue := &purgeQueueStub{}
	f.svc.UsePurgeQueue(queue)
	ctx := context.Background()
	owner := claimsFor("s-1", models.RoleStudent)

	activity, err := f.svc.Create(ctx, dto.CreateComplementaryActivityRequest{TypeID: "type-1", Quantity: 1}, owner)
	require.NoError(t, err)
	first, err := f.svc.UploadEvidence(ctx, activity.ID, "a.png", "image/png", strings.NewReader("png"), owner)
	require.NoError(t, err)
	stale := first.EvidenceFile

	_, err = f.svc.UploadEvidence(ctx, activity.ID, "b.png", "image/png", strings.NewReader("png2"), owner)
	require.NoError(t, err)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, EvidencePurgeJob, queue.jobs[0].Kind)
	assert.Equal(t, stale, queue.jobs[0].Payload)

	require.NoError(t, f.svc.PurgeEvidence(ctx, queue.jobs[0]))
	_, err = f.files.Open(stale)
	assert.Error(t, err)

	assert.Error(t, f.svc.PurgeEvidence(ctx, jobs.Job{Kind: "other"}))
}
