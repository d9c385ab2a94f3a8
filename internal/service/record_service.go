package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/export"
)

type transcriptRepository interface {
	Transcript(ctx context.Context, studentID string) ([]models.TranscriptLine, error)
}

type acceptedActivityRepository interface {
	ListAcceptedByStudent(ctx context.Context, studentID string) ([]models.ComplementaryActivity, error)
}

type activityTypeFinder interface {
	FindByID(ctx context.Context, id string) (*models.ComplementaryActivityType, error)
}

var transcriptHeaders = []string{"Semester", "Code", "Subject", "Workload", "Classroom", "Status", "Grade", "Frequency"}

// RecordService builds a student's academic record: transcript and complementary score.
type RecordService struct {
	people      personFinder
	enrollments transcriptRepository
	activities  acceptedActivityRepository
	types       activityTypeFinder
	logger      *zap.Logger
}

// NewRecordService constructs a RecordService.
func NewRecordService(people personFinder, enrollments transcriptRepository, activities acceptedActivityRepository, types activityTypeFinder, logger *zap.Logger) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{people: people, enrollments: enrollments, activities: activities, types: types, logger: logger}
}

// Transcript returns the student's enrollments joined with classroom and subject.
func (s *RecordService) Transcript(ctx context.Context, studentID string, actor *models.JWTClaims) (*models.Transcript, error) {
	if err := ownedBy(actor, studentID); err != nil {
		return nil, err
	}
	student, err := requirePerson(ctx, s.people, studentID, "student", models.RoleStudent)
	if err != nil {
		return nil, err
	}
	lines, err := s.enrollments.Transcript(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load transcript")
	}
	return &models.Transcript{Student: student, Lines: lines}, nil
}

// ExportTranscript renders the transcript as CSV or PDF and returns the payload with a file name.
func (s *RecordService) ExportTranscript(ctx context.Context, studentID string, format export.Format, actor *models.JWTClaims) ([]byte, string, error) {
	transcript, err := s.Transcript(ctx, studentID, actor)
	if err != nil {
		return nil, "", err
	}

	doc := export.Document{
		Title:   "Academic transcript",
		Summary: []string{"Student: " + transcript.Student.Name},
		Data:    export.Dataset{Headers: transcriptHeaders},
	}
	if transcript.Student.Registration != "" {
		doc.Summary = append(doc.Summary, "Registration: "+transcript.Student.Registration)
	}
	for _, line := range transcript.Lines {
		doc.Data.Rows = append(doc.Data.Rows, map[string]string{
			"Semester":  line.Semester,
			"Code":      line.SubjectCode,
			"Subject":   line.SubjectName,
			"Workload":  strconv.Itoa(line.Workload),
			"Classroom": line.Classroom,
			"Status":    string(line.Status),
			"Grade":     strconv.FormatFloat(line.Grade, 'f', 2, 64),
			"Frequency": strconv.FormatFloat(line.Frequency, 'f', 1, 64),
		})
	}

	payload, err := export.Render(format, doc)
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to render transcript")
	}
	return payload, fmt.Sprintf("transcript-%s.%s", studentID, format), nil
}

// ComplementaryScore sums quantity times type score over accepted activities, capping each type at its max score.
func (s *RecordService) ComplementaryScore(ctx context.Context, studentID string, actor *models.JWTClaims) (*models.ComplementaryScore, error) {
	if err := ownedBy(actor, studentID); err != nil {
		return nil, err
	}
	if _, err := requirePerson(ctx, s.people, studentID, "student", models.RoleStudent); err != nil {
		return nil, err
	}
	activities, err := s.activities.ListAcceptedByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load complementary activities")
	}

	quantities := make(map[string]float64)
	for _, activity := range activities {
		quantities[activity.TypeID] += activity.Quantity
	}

	var mu sync.Mutex
	lines := make([]models.ComplementaryScoreLine, 0, len(quantities))
	g, gctx := errgroup.WithContext(ctx)
	for typeID, quantity := range quantities {
		typeID, quantity := typeID, quantity
		g.Go(func() error {
			activityType, err := s.types.FindByID(gctx, typeID)
			if err != nil {
				return lookupError(err, "complementary activity type")
			}
			line := scoreLine(activityType, quantity)
			mu.Lock()
			lines = append(lines, line)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].TypeName < lines[j].TypeName })
	score := &models.ComplementaryScore{StudentID: studentID, Lines: lines}
	for _, line := range lines {
		score.Total += line.Credited
	}
	return score, nil
}

func scoreLine(activityType *models.ComplementaryActivityType, quantity float64) models.ComplementaryScoreLine {
	raw := quantity * activityType.Score
	credited := raw
	if activityType.MaxScore > 0 && credited > activityType.MaxScore {
		credited = activityType.MaxScore
	}
	return models.ComplementaryScoreLine{
		TypeID:   activityType.ID,
		TypeName: activityType.Name,
		Quantity: quantity,
		Raw:      raw,
		Credited: credited,
		MaxScore: activityType.MaxScore,
	}
}
