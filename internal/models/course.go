package models

import (
	"time"

	"github.com/lib/pq"
)

// Course is a degree programme coordinated by a teacher.
type Course struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Description   string `db:"description" json:"description"`
	CoordinatorID string `db:"coordinator_id" json:"coordinator_id"`
	Audit
}

// CourseFilter captures filtering criteria for listing courses.
type CourseFilter struct {
	CoordinatorID string
	Search        string
	PageRequest
}

// CurriculumGride is a versioned curriculum of a course.
type CurriculumGride struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	CourseID    string         `db:"course_id" json:"course_id"`
	Active      bool           `db:"active" json:"active"`
	DtStart     time.Time      `db:"dt_start" json:"dt_start"`
	DtEnd       time.Time      `db:"dt_end" json:"dt_end"`
	Subjects    pq.StringArray `db:"subjects" json:"subjects"`
	Audit
}

// CurriculumGrideFilter captures filtering criteria for listing grides.
type CurriculumGrideFilter struct {
	CourseID string
	Active   *bool
	Search   string
	PageRequest
}

// Subject belongs to exactly one curriculum gride.
type Subject struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	Description       string         `db:"description" json:"description"`
	Code              string         `db:"code" json:"code"`
	Workload          int            `db:"workload" json:"workload"`
	CurriculumGrideID string         `db:"curriculum_gride_id" json:"curriculum_gride_id"`
	Classrooms        pq.StringArray `db:"classrooms" json:"classrooms"`
	Audit
}

// SubjectFilter captures filtering criteria for listing subjects.
type SubjectFilter struct {
	CurriculumGrideID string
	Search            string
	PageRequest
}

// Classroom is a subject offering taught by one teacher in a semester.
type Classroom struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	SubjectID   string         `db:"subject_id" json:"subject_id"`
	TeacherID   string         `db:"teacher_id" json:"teacher_id"`
	Semester    string         `db:"semester" json:"semester"`
	Capacity    int            `db:"capacity" json:"capacity"`
	Schedule    string         `db:"schedule" json:"schedule"`
	Enrollments pq.StringArray `db:"enrollments" json:"enrollments"`
	Audit
}

// ClassroomFilter captures filtering criteria for listing classrooms.
type ClassroomFilter struct {
	SubjectID string
	TeacherID string
	Semester  string
	PageRequest
}
