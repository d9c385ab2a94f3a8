package models

// EnrollmentStatus is the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentCanceled   EnrollmentStatus = "Canceled"
	EnrollmentInProgress EnrollmentStatus = "In Progress"
	EnrollmentApproved   EnrollmentStatus = "Approved"
	EnrollmentRepproved  EnrollmentStatus = "Repproved"
)

// Valid reports whether s is a known status.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentCanceled, EnrollmentInProgress, EnrollmentApproved, EnrollmentRepproved:
		return true
	}
	return false
}

// Enrollment registers a student in a classroom.
type Enrollment struct {
	ID          string           `db:"id" json:"id"`
	StudentID   string           `db:"student_id" json:"student_id"`
	ClassroomID string           `db:"classroom_id" json:"classroom_id"`
	Status      EnrollmentStatus `db:"status" json:"status"`
	Grade       float64          `db:"grade" json:"grade"`
	Frequency   float64          `db:"frequency" json:"frequency"`
	Audit
}

// EnrollmentFilter captures filtering criteria for listing enrollments.
type EnrollmentFilter struct {
	StudentID   string
	ClassroomID string
	Status      EnrollmentStatus
	PageRequest
}

// TranscriptLine is one enrollment joined with its classroom and subject.
type TranscriptLine struct {
	EnrollmentID string           `db:"enrollment_id" json:"enrollment_id"`
	SubjectCode  string           `db:"subject_code" json:"subject_code"`
	SubjectName  string           `db:"subject_name" json:"subject_name"`
	Workload     int              `db:"workload" json:"workload"`
	Classroom    string           `db:"classroom_name" json:"classroom"`
	Semester     string           `db:"semester" json:"semester"`
	Status       EnrollmentStatus `db:"status" json:"status"`
	Grade        float64          `db:"grade" json:"grade"`
	Frequency    float64          `db:"frequency" json:"frequency"`
}

// Transcript is a student's academic history.
type Transcript struct {
	Student *Person          `json:"student"`
	Lines   []TranscriptLine `json:"lines"`
}
