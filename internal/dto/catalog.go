package dto

import "time"

// CreateCourseRequest holds payload for creating courses.
type CreateCourseRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	CoordinatorID string `json:"coordinator_id" validate:"required"`
}

// UpdateCourseRequest carries sparse course changes.
type UpdateCourseRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	CoordinatorID *string `json:"coordinator_id"`
}

// CreateCurriculumGrideRequest holds payload for creating curriculum grides.
type CreateCurriculumGrideRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	CourseID    string    `json:"course_id" validate:"required"`
	Active      *bool     `json:"active"`
	DtStart     time.Time `json:"dt_start" validate:"required"`
	DtEnd       time.Time `json:"dt_end" validate:"required"`
}

// UpdateCurriculumGrideRequest carries sparse gride changes.
type UpdateCurriculumGrideRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	CourseID    *string    `json:"course_id"`
	Active      *bool      `json:"active"`
	DtStart     *time.Time `json:"dt_start"`
	DtEnd       *time.Time `json:"dt_end"`
}

// CreateSubjectRequest holds payload for creating subjects.
type CreateSubjectRequest struct {
	Name              string `json:"name" validate:"required"`
	Description       string `json:"description"`
	Code              string `json:"code"`
	Workload          int    `json:"workload" validate:"gte=0"`
	CurriculumGrideID string `json:"curriculum_gride_id" validate:"required"`
}

// UpdateSubjectRequest carries sparse subject changes.
type UpdateSubjectRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Code              *string `json:"code"`
	Workload          *int    `json:"workload" validate:"omitempty,gte=0"`
	CurriculumGrideID *string `json:"curriculum_gride_id"`
}

// CreateClassroomRequest holds payload for creating classrooms.
type CreateClassroomRequest struct {
	Name      string `json:"name" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
	Schedule  string `json:"schedule"`
}

// UpdateClassroomRequest carries sparse classroom changes.
type UpdateClassroomRequest struct {
	Name      *string `json:"name"`
	SubjectID *string `json:"subject_id"`
	TeacherID *string `json:"teacher_id"`
	Semester  *string `json:"semester"`
	Capacity  *int    `json:"capacity" validate:"omitempty,gte=0"`
	Schedule  *string `json:"schedule"`
}
