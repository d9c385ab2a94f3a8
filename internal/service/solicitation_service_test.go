package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

func newSolicitationFixture() (*fakePeople, *fakeSolicitationTypes, *fakeSolicitations, *SolicitationService) {
	people := newFakePeople(student("s-1"), teacher("t-1"))
	types := newFakeSolicitationTypes(
		models.SolicitationType{ID: "st-1", Name: "Exam review"},
		models.SolicitationType{ID: "st-2", Name: "Leave"},
	)
	solicitations := newFakeSolicitations()
	return people, types, solicitations, NewSolicitationService(solicitations, types, people, nil, nil)
}

func boolPtr(b bool) *bool { return &b }

func TestSolicitationCreateAndReviewFlow(t *testing.T) {
	people, types, _, svc := newSolicitationFixture()
	ctx := context.Background()
	owner := claimsFor("s-1", models.RoleStudent)

	solicitation, err := svc.Create(ctx, dto.CreateSolicitationRequest{TypeID: "st-1", Meta: json.RawMessage(`{"exam":"final"}`)}, owner)
	require.NoError(t, err)
	assert.Equal(t, models.SolicitationPending, solicitation.Status)
	assert.JSONEq(t, `{"exam":"final"}`, string(solicitation.Meta))
	assert.Equal(t, []string{solicitation.ID}, []string(types.row("st-1").Solicitations))
	assert.Equal(t, []string{solicitation.ID}, []string(people.row("s-1").Solicitations))

	reviewed, err := svc.Review(ctx, solicitation.ID, ReviewerTeacher, dto.ReviewSolicitationRequest{Approved: boolPtr(true), Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, models.SolicitationPending, reviewed.Status)
	assert.Equal(t, "ok", reviewed.TeacherNotes)

	reviewed, err = svc.Review(ctx, solicitation.ID, ReviewerCoordinator, dto.ReviewSolicitationRequest{Approved: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.SolicitationDeferred, reviewed.Status)

	reviewed, err = svc.Review(ctx, solicitation.ID, ReviewerTeacher, dto.ReviewSolicitationRequest{Approved: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, models.SolicitationUndeferred, reviewed.Status)

	_, err = svc.Review(ctx, solicitation.ID, ReviewerTeacher, dto.ReviewSolicitationRequest{})
	assert.Equal(t, "approved is required", appErrors.FromError(err).Message)
}

func TestSolicitationRejectsNonObjectMeta(t *testing.T) {
	_, _, solicitations, svc := newSolicitationFixture()

	_, err := svc.Create(context.Background(), dto.CreateSolicitationRequest{TypeID: "st-1", Meta: json.RawMessage(`[1,2]`)}, claimsFor("s-1", models.RoleStudent))
	assert.Equal(t, 400, appErrors.FromError(err).Status)
	assert.Empty(t, solicitations.live(nil))

	_, err = svc.Create(context.Background(), dto.CreateSolicitationRequest{TypeID: "st-1", StudentID: "t-1"}, claimsFor("admin", models.RoleAdmin))
	assert.Equal(t, "student must be a student", appErrors.FromError(err).Message)
}

func TestSolicitationReassignAndDelete(t *testing.T) {
	people, types, solicitations, svc := newSolicitationFixture()
	ctx := context.Background()
	owner := claimsFor("s-1", models.RoleStudent)

	solicitation, err := svc.Create(ctx, dto.CreateSolicitationRequest{TypeID: "st-1"}, owner)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(solicitation.Meta))

	target := "st-2"
	_, err = svc.Update(ctx, solicitation.ID, dto.UpdateSolicitationRequest{TypeID: &target}, owner)
	require.NoError(t, err)
	assert.Empty(t, types.row("st-1").Solicitations)
	assert.Equal(t, []string{solicitation.ID}, []string(types.row("st-2").Solicitations))

	require.NoError(t, svc.Delete(ctx, solicitation.ID, owner))
	assert.Empty(t, types.row("st-2").Solicitations)
	assert.Empty(t, people.row("s-1").Solicitations)
	assert.True(t, solicitations.row(solicitation.ID).Deleted)

	list, pagination, err := svc.List(ctx, models.SolicitationFilter{}, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, pagination.Page)
}

func TestSolicitationTypeDeleteCascades(t *testing.T) {
	people, types, solicitations, svc := newSolicitationFixture()
	ctx := context.Background()
	typeSvc := NewSolicitationTypeService(types, solicitations, svc, nil, nil, nil)

	solicitation, err := svc.Create(ctx, dto.CreateSolicitationRequest{TypeID: "st-1"}, claimsFor("s-1", models.RoleStudent))
	require.NoError(t, err)

	require.NoError(t, typeSvc.Delete(ctx, "st-1", nil))
	assert.True(t, solicitations.row(solicitation.ID).Deleted)
	assert.Empty(t, people.row("s-1").Solicitations)
	assert.True(t, types.row("st-1").Deleted)

	_, err = typeSvc.Get(ctx, "st-1")
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestSolicitationReviewLocksStudentEdits(t *testing.T) {
	_, types, solicitations, svc := newSolicitationFixture()
	ctx := context.Background()
	owner := claimsFor("s-1", models.RoleStudent)

	solicitation, err := svc.Create(ctx, dto.CreateSolicitationRequest{TypeID: "st-1", Meta: json.RawMessage(`{"exam":"final"}`)}, owner)
	require.NoError(t, err)
	_, err = svc.Review(ctx, solicitation.ID, ReviewerTeacher, dto.ReviewSolicitationRequest{Approved: boolPtr(true)})
	require.NoError(t, err)

	target := "st-2"
	_, err = svc.Update(ctx, solicitation.ID, dto.UpdateSolicitationRequest{TypeID: &target}, owner)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 412, appErr.Status)
	assert.Equal(t, "solicitation has already been reviewed", appErr.Message)

	_, err = svc.Update(ctx, solicitation.ID, dto.UpdateSolicitationRequest{Meta: json.RawMessage(`{"exam":"midterm"}`)}, owner)
	assert.Equal(t, 412, appErrors.FromError(err).Status)
	assert.JSONEq(t, `{"exam":"final"}`, string(solicitations.row(solicitation.ID).Meta))
	assert.Equal(t, []string{solicitation.ID}, []string(types.row("st-1").Solicitations))

	updated, err := svc.Update(ctx, solicitation.ID, dto.UpdateSolicitationRequest{TypeID: &target}, claimsFor("a-1", models.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, "st-2", updated.TypeID)
}
