package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/export"
)

func newRecordFixture() *RecordService {
	people := newFakePeople(student("s-1"), teacher("t-1"))
	enrollments := newFakeEnrollments()
	enrollments.transcript = []models.TranscriptLine{
		{EnrollmentID: "e-1", SubjectCode: "ALG", SubjectName: "Algorithms", Workload: 60, Classroom: "A", Semester: "2024/1", Status: models.EnrollmentApproved, Grade: 9, Frequency: 95},
	}
	types := newFakeActivityTypes(
		models.ComplementaryActivityType{ID: "lecture", Name: "Lecture", Score: 2, MaxScore: 10},
		models.ComplementaryActivityType{ID: "volunteer", Name: "Volunteer", Score: 1.5},
	)
	activities := newFakeActivities(
		models.ComplementaryActivity{ID: "a-1", TypeID: "lecture", StudentID: "s-1", Quantity: 4, Status: models.ActivityAccepted},
		models.ComplementaryActivity{ID: "a-2", TypeID: "lecture", StudentID: "s-1", Quantity: 3, Status: models.ActivityAccepted},
		models.ComplementaryActivity{ID: "a-3", TypeID: "volunteer", StudentID: "s-1", Quantity: 2, Status: models.ActivityAccepted},
		models.ComplementaryActivity{ID: "a-4", TypeID: "volunteer", StudentID: "s-1", Quantity: 10, Status: models.ActivityRejected},
	)
	return NewRecordService(people, enrollments, activities, types, nil)
}

func TestComplementaryScoreCapsPerType(t *testing.T) {
	svc := newRecordFixture()

	score, err := svc.ComplementaryScore(context.Background(), "s-1", nil)
	require.NoError(t, err)
	require.Len(t, score.Lines, 2)
	assert.Equal(t, "Lecture", score.Lines[0].TypeName)
	assert.Equal(t, 14.0, score.Lines[0].Raw)
	assert.Equal(t, 10.0, score.Lines[0].Credited)
	assert.Equal(t, 3.0, score.Lines[1].Credited)
	assert.Equal(t, 13.0, score.Total)
}

func TestTranscriptAccessAndExport(t *testing.T) {
	svc := newRecordFixture()
	ctx := context.Background()

	_, err := svc.Transcript(ctx, "s-1", claimsFor("s-2", models.RoleStudent))
	assert.Equal(t, 403, appErrors.FromError(err).Status)

	_, err = svc.Transcript(ctx, "t-1", nil)
	assert.Equal(t, 400, appErrors.FromError(err).Status)

	transcript, err := svc.Transcript(ctx, "s-1", claimsFor("s-1", models.RoleStudent))
	require.NoError(t, err)
	assert.Len(t, transcript.Lines, 1)

	payload, name, err := svc.ExportTranscript(ctx, "s-1", export.FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "transcript-s-1.csv", name)
	assert.True(t, strings.HasPrefix(string(payload), "Semester,Code,Subject"))
	assert.Contains(t, string(payload), "Algorithms")
}
