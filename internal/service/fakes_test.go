package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/noah-isme/easycd-api/internal/models"
)

// memStore is an in-memory table with soft delete and back-reference arrays.
type memStore[T any] struct {
	mu     sync.Mutex
	rows   map[string]*T
	key    func(*T) *string
	audit  func(*T) *models.Audit
	arrays []func(*T) *pq.StringArray
	err    error
}

func newMemStore[T any](key func(*T) *string, audit func(*T) *models.Audit, arrays ...func(*T) *pq.StringArray) *memStore[T] {
	return &memStore[T]{rows: map[string]*T{}, key: key, audit: audit, arrays: arrays}
}

func (m *memStore[T]) seed(rows ...T) {
	for i := range rows {
		row := rows[i]
		m.rows[*m.key(&row)] = &row
	}
}

// row returns the stored row including deleted ones.
func (m *memStore[T]) row(id string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memStore[T]) find(id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok || m.audit(row).Deleted {
		return nil, sql.ErrNoRows
	}
	clone := *row
	for _, arr := range m.arrays {
		*arr(&clone) = append(pq.StringArray{}, *arr(row)...)
	}
	return &clone, nil
}

func (m *memStore[T]) live(match func(*T) bool) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		if m.audit(row).Deleted || (match != nil && !match(row)) {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return *m.key(&out[i]) < *m.key(&out[j]) })
	return out
}

func (m *memStore[T]) liveIDs(match func(*T) bool) []string {
	rows := m.live(match)
	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, *m.key(&rows[i]))
	}
	return ids
}

func (m *memStore[T]) create(row *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if *m.key(row) == "" {
		*m.key(row) = uuid.NewString()
	}
	m.audit(row).Touch(time.Now().UTC())
	clone := *row
	m.rows[*m.key(row)] = &clone
	return nil
}

func (m *memStore[T]) update(row *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	existing, ok := m.rows[*m.key(row)]
	if !ok || m.audit(existing).Deleted {
		return sql.ErrNoRows
	}
	clone := *row
	for _, arr := range m.arrays {
		*arr(&clone) = *arr(existing)
	}
	m.rows[*m.key(row)] = &clone
	return nil
}

func (m *memStore[T]) softDelete(id, actorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || m.audit(row).Deleted {
		return sql.ErrNoRows
	}
	now := time.Now().UTC()
	a := m.audit(row)
	a.Deleted = true
	a.DeletedAt = &now
	if actorID != "" {
		a.DeletedBy = &actorID
	}
	return nil
}

func (m *memStore[T]) push(ownerID string, arr func(*T) *pq.StringArray, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[ownerID]
	if !ok {
		return nil
	}
	for _, existing := range *arr(row) {
		if existing == id {
			return nil
		}
	}
	*arr(row) = append(*arr(row), id)
	return nil
}

func (m *memStore[T]) pull(ownerID string, arr func(*T) *pq.StringArray, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[ownerID]
	if !ok {
		return nil
	}
	kept := pq.StringArray{}
	for _, existing := range *arr(row) {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	*arr(row) = kept
	return nil
}

func page[T any](rows []T) ([]T, int, error) {
	return rows, len(rows), nil
}

// people

type fakePeople struct{ *memStore[models.Person] }

func personEnrollmentsOf(p *models.Person) *pq.StringArray   { return &p.Enrollments }
func personSolicitationsOf(p *models.Person) *pq.StringArray { return &p.Solicitations }
func personActivitiesOf(p *models.Person) *pq.StringArray    { return &p.ComplementaryActivities }

func newFakePeople(rows ...models.Person) *fakePeople {
	store := newMemStore(func(p *models.Person) *string { return &p.ID }, func(p *models.Person) *models.Audit { return &p.Audit },
		personEnrollmentsOf, personSolicitationsOf, personActivitiesOf)
	store.seed(rows...)
	return &fakePeople{store}
}

func (f *fakePeople) List(_ context.Context, filter models.PersonFilter) ([]models.Person, int, error) {
	return page(f.live(func(p *models.Person) bool { return filter.Role == "" || p.Role == filter.Role }))
}
func (f *fakePeople) FindByID(_ context.Context, id string) (*models.Person, error) { return f.find(id) }
func (f *fakePeople) Create(_ context.Context, p *models.Person) error                { return f.create(p) }
func (f *fakePeople) Update(_ context.Context, p *models.Person) error                { return f.update(p) }
func (f *fakePeople) SoftDelete(_ context.Context, id, actor string) error           { return f.softDelete(id, actor) }
func (f *fakePeople) SetUser(_ context.Context, personID string, userID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[personID]; ok {
		row.UserID = userID
	}
	return nil
}
func (f *fakePeople) AddEnrollment(_ context.Context, id, ref string) error {
	return f.push(id, personEnrollmentsOf, ref)
}
func (f *fakePeople) RemoveEnrollment(_ context.Context, id, ref string) error {
	return f.pull(id, personEnrollmentsOf, ref)
}
func (f *fakePeople) AddSolicitation(_ context.Context, id, ref string) error {
	return f.push(id, personSolicitationsOf, ref)
}
func (f *fakePeople) RemoveSolicitation(_ context.Context, id, ref string) error {
	return f.pull(id, personSolicitationsOf, ref)
}
func (f *fakePeople) AddComplementaryActivity(_ context.Context, id, ref string) error {
	return f.push(id, personActivitiesOf, ref)
}
func (f *fakePeople) RemoveComplementaryActivity(_ context.Context, id, ref string) error {
	return f.pull(id, personActivitiesOf, ref)
}

// users

type fakeUsers struct{ *memStore[models.User] }

func newFakeUsers(rows ...models.User) *fakeUsers {
	store := newMemStore(func(u *models.User) *string { return &u.ID }, func(u *models.User) *models.Audit { return &u.Audit })
	store.seed(rows...)
	return &fakeUsers{store}
}

func (f *fakeUsers) List(_ context.Context, _ models.UserFilter) ([]models.User, int, error) {
	return page(f.live(nil))
}
func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) { return f.find(id) }
func (f *fakeUsers) FindByPersonID(_ context.Context, personID string) (*models.User, error) {
	rows := f.live(func(u *models.User) bool { return u.PersonID == personID })
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}
	return &rows[0], nil
}
func (f *fakeUsers) ExistsByUsername(_ context.Context, username, excludeID string) (bool, error) {
	rows := f.live(func(u *models.User) bool { return u.Username == username && u.ID != excludeID })
	return len(rows) > 0, nil
}
func (f *fakeUsers) Create(_ context.Context, u *models.User) error      { return f.create(u) }
func (f *fakeUsers) Update(_ context.Context, u *models.User) error      { return f.update(u) }
func (f *fakeUsers) SoftDelete(_ context.Context, id, actor string) error { return f.softDelete(id, actor) }

// courses

type fakeCourses struct{ *memStore[models.Course] }

func newFakeCourses(rows ...models.Course) *fakeCourses {
	store := newMemStore(func(c *models.Course) *string { return &c.ID }, func(c *models.Course) *models.Audit { return &c.Audit })
	store.seed(rows...)
	return &fakeCourses{store}
}

func (f *fakeCourses) List(_ context.Context, _ models.CourseFilter) ([]models.Course, int, error) {
	return page(f.live(nil))
}
func (f *fakeCourses) FindByID(_ context.Context, id string) (*models.Course, error) { return f.find(id) }
func (f *fakeCourses) Create(_ context.Context, c *models.Course) error                { return f.create(c) }
func (f *fakeCourses) Update(_ context.Context, c *models.Course) error                { return f.update(c) }
func (f *fakeCourses) SoftDelete(_ context.Context, id, actor string) error           { return f.softDelete(id, actor) }
func (f *fakeCourses) CountByCoordinator(_ context.Context, personID string) (int, error) {
	return len(f.live(func(c *models.Course) bool { return c.CoordinatorID == personID })), nil
}

// curriculum grides

type fakeGrides struct{ *memStore[models.CurriculumGride] }

func grideSubjectsOf(g *models.CurriculumGride) *pq.StringArray { return &g.Subjects }

func newFakeGrides(rows ...models.CurriculumGride) *fakeGrides {
	store := newMemStore(func(g *models.CurriculumGride) *string { return &g.ID }, func(g *models.CurriculumGride) *models.Audit { return &g.Audit }, grideSubjectsOf)
	store.seed(rows...)
	return &fakeGrides{store}
}

func (f *fakeGrides) List(_ context.Context, filter models.CurriculumGrideFilter) ([]models.CurriculumGride, int, error) {
	return page(f.live(func(g *models.CurriculumGride) bool { return filter.CourseID == "" || g.CourseID == filter.CourseID }))
}
func (f *fakeGrides) FindByID(_ context.Context, id string) (*models.CurriculumGride, error) {
	return f.find(id)
}
func (f *fakeGrides) Create(_ context.Context, g *models.CurriculumGride) error { return f.create(g) }
func (f *fakeGrides) Update(_ context.Context, g *models.CurriculumGride) error { return f.update(g) }
func (f *fakeGrides) SoftDelete(_ context.Context, id, actor string) error     { return f.softDelete(id, actor) }
func (f *fakeGrides) CountByCourse(_ context.Context, courseID string) (int, error) {
	return len(f.live(func(g *models.CurriculumGride) bool { return g.CourseID == courseID })), nil
}
func (f *fakeGrides) AddSubject(_ context.Context, id, ref string) error {
	return f.push(id, grideSubjectsOf, ref)
}
func (f *fakeGrides) RemoveSubject(_ context.Context, id, ref string) error {
	return f.pull(id, grideSubjectsOf, ref)
}

// subjects

type fakeSubjects struct{ *memStore[models.Subject] }

func subjectClassroomsOf(s *models.Subject) *pq.StringArray { return &s.Classrooms }

func newFakeSubjects(rows ...models.Subject) *fakeSubjects {
	store := newMemStore(func(s *models.Subject) *string { return &s.ID }, func(s *models.Subject) *models.Audit { return &s.Audit }, subjectClassroomsOf)
	store.seed(rows...)
	return &fakeSubjects{store}
}

func (f *fakeSubjects) List(_ context.Context, _ models.SubjectFilter) ([]models.Subject, int, error) {
	return page(f.live(nil))
}
func (f *fakeSubjects) FindByID(_ context.Context, id string) (*models.Subject, error) { return f.find(id) }
func (f *fakeSubjects) Create(_ context.Context, s *models.Subject) error                { return f.create(s) }
func (f *fakeSubjects) Update(_ context.Context, s *models.Subject) error                { return f.update(s) }
func (f *fakeSubjects) SoftDelete(_ context.Context, id, actor string) error            { return f.softDelete(id, actor) }
func (f *fakeSubjects) CountByGride(_ context.Context, grideID string) (int, error) {
	return len(f.live(func(s *models.Subject) bool { return s.CurriculumGrideID == grideID })), nil
}
func (f *fakeSubjects) AddClassroom(_ context.Context, id, ref string) error {
	return f.push(id, subjectClassroomsOf, ref)
}
func (f *fakeSubjects) RemoveClassroom(_ context.Context, id, ref string) error {
	return f.pull(id, subjectClassroomsOf, ref)
}

// classrooms

type fakeClassrooms struct{ *memStore[models.Classroom] }

func classroomEnrollmentsOf(c *models.Classroom) *pq.StringArray { return &c.Enrollments }

func newFakeClassrooms(rows ...models.Classroom) *fakeClassrooms {
	store := newMemStore(func(c *models.Classroom) *string { return &c.ID }, func(c *models.Classroom) *models.Audit { return &c.Audit }, classroomEnrollmentsOf)
	store.seed(rows...)
	return &fakeClassrooms{store}
}

func (f *fakeClassrooms) List(_ context.Context, _ models.ClassroomFilter) ([]models.Classroom, int, error) {
	return page(f.live(nil))
}
func (f *fakeClassrooms) FindByID(_ context.Context, id string) (*models.Classroom, error) {
	return f.find(id)
}
func (f *fakeClassrooms) Create(_ context.Context, c *models.Classroom) error { return f.create(c) }
func (f *fakeClassrooms) Update(_ context.Context, c *models.Classroom) error { return f.update(c) }
func (f *fakeClassrooms) SoftDelete(_ context.Context, id, actor string) error {
	return f.softDelete(id, actor)
}
func (f *fakeClassrooms) CountBySubject(_ context.Context, subjectID string) (int, error) {
	return len(f.live(func(c *models.Classroom) bool { return c.SubjectID == subjectID })), nil
}
func (f *fakeClassrooms) CountByTeacher(_ context.Context, personID string) (int, error) {
	return len(f.live(func(c *models.Classroom) bool { return c.TeacherID == personID })), nil
}
func (f *fakeClassrooms) AddEnrollment(_ context.Context, id, ref string) error {
	return f.push(id, classroomEnrollmentsOf, ref)
}
func (f *fakeClassrooms) RemoveEnrollment(_ context.Context, id, ref string) error {
	return f.pull(id, classroomEnrollmentsOf, ref)
}

// enrollments

type fakeEnrollments struct {
	*memStore[models.Enrollment]
	transcript []models.TranscriptLine
}

func newFakeEnrollments(rows ...models.Enrollment) *fakeEnrollments {
	store := newMemStore(func(e *models.Enrollment) *string { return &e.ID }, func(e *models.Enrollment) *models.Audit { return &e.Audit })
	store.seed(rows...)
	return &fakeEnrollments{memStore: store}
}

func (f *fakeEnrollments) List(_ context.Context, _ models.EnrollmentFilter) ([]models.Enrollment, int, error) {
	return page(f.live(nil))
}
func (f *fakeEnrollments) FindByID(_ context.Context, id string) (*models.Enrollment, error) {
	return f.find(id)
}
func (f *fakeEnrollments) Create(_ context.Context, e *models.Enrollment) error { return f.create(e) }
func (f *fakeEnrollments) Update(_ context.Context, e *models.Enrollment) error { return f.update(e) }
func (f *fakeEnrollments) SoftDelete(_ context.Context, id, actor string) error {
	return f.softDelete(id, actor)
}
func (f *fakeEnrollments) ListIDsByClassroom(_ context.Context, classroomID string) ([]string, error) {
	return f.liveIDs(func(e *models.Enrollment) bool { return e.ClassroomID == classroomID }), nil
}
func (f *fakeEnrollments) ListIDsByStudent(_ context.Context, studentID string) ([]string, error) {
	return f.liveIDs(func(e *models.Enrollment) bool { return e.StudentID == studentID }), nil
}
func (f *fakeEnrollments) CountOpenByClassroom(_ context.Context, classroomID string) (int, error) {
	return len(f.live(func(e *models.Enrollment) bool {
		return e.ClassroomID == classroomID && e.Status != models.EnrollmentCanceled
	})), nil
}
func (f *fakeEnrollments) ExistsOpen(_ context.Context, studentID, classroomID, excludeID string) (bool, error) {
	return len(f.live(func(e *models.Enrollment) bool {
		return e.StudentID == studentID && e.ClassroomID == classroomID && e.ID != excludeID && e.Status != models.EnrollmentCanceled
	})) > 0, nil
}
func (f *fakeEnrollments) Transcript(_ context.Context, _ string) ([]models.TranscriptLine, error) {
	return f.transcript, nil
}

// complementary activity types

type fakeActivityTypes struct {
	*memStore[models.ComplementaryActivityType]
}

func typeActivitiesOf(t *models.ComplementaryActivityType) *pq.StringArray { return &t.Activities }

func newFakeActivityTypes(rows ...models.ComplementaryActivityType) *fakeActivityTypes {
	store := newMemStore(func(t *models.ComplementaryActivityType) *string { return &t.ID },
		func(t *models.ComplementaryActivityType) *models.Audit { return &t.Audit }, typeActivitiesOf)
	store.seed(rows...)
	return &fakeActivityTypes{store}
}

func (f *fakeActivityTypes) List(_ context.Context, _ models.ComplementaryActivityTypeFilter) ([]models.ComplementaryActivityType, int, error) {
	return page(f.live(nil))
}
func (f *fakeActivityTypes) FindByID(_ context.Context, id string) (*models.ComplementaryActivityType, error) {
	return f.find(id)
}
func (f *fakeActivityTypes) Create(_ context.Context, t *models.ComplementaryActivityType) error {
	return f.create(t)
}
func (f *fakeActivityTypes) Update(_ context.Context, t *models.ComplementaryActivityType) error {
	return f.update(t)
}
func (f *fakeActivityTypes) SoftDelete(_ context.Context, id, actor string) error {
	return f.softDelete(id, actor)
}
func (f *fakeActivityTypes) AddActivity(_ context.Context, id, ref string) error {
	return f.push(id, typeActivitiesOf, ref)
}
func (f *fakeActivityTypes) RemoveActivity(_ context.Context, id, ref string) error {
	return f.pull(id, typeActivitiesOf, ref)
}

// complementary activities

type fakeActivities struct {
	*memStore[models.ComplementaryActivity]
}

func newFakeActivities(rows ...models.ComplementaryActivity) *fakeActivities {
	store := newMemStore(func(a *models.ComplementaryActivity) *string { return &a.ID },
		func(a *models.ComplementaryActivity) *models.Audit { return &a.Audit })
	store.seed(rows...)
	return &fakeActivities{store}
}

func (f *fakeActivities) List(_ context.Context, filter models.ComplementaryActivityFilter) ([]models.ComplementaryActivity, int, error) {
	return page(f.live(func(a *models.ComplementaryActivity) bool {
		return filter.StudentID == "" || a.StudentID == filter.StudentID
	}))
}
func (f *fakeActivities) FindByID(_ context.Context, id string) (*models.ComplementaryActivity, error) {
	return f.find(id)
}
func (f *fakeActivities) Create(_ context.Context, a *models.ComplementaryActivity) error {
	return f.create(a)
}
func (f *fakeActivities) Update(_ context.Context, a *models.ComplementaryActivity) error {
	return f.update(a)
}
func (f *fakeActivities) SoftDelete(_ context.Context, id, actor string) error {
	return f.softDelete(id, actor)
}
func (f *fakeActivities) ListIDsByType(_ context.Context, typeID string) ([]string, error) {
	return f.liveIDs(func(a *models.ComplementaryActivity) bool { return a.TypeID == typeID }), nil
}
func (f *fakeActivities) ListIDsByStudent(_ context.Context, studentID string) ([]string, error) {
	return f.liveIDs(func(a *models.ComplementaryActivity) bool { return a.StudentID == studentID }), nil
}
func (f *fakeActivities) ListAcceptedByStudent(_ context.Context, studentID string) ([]models.ComplementaryActivity, error) {
	return f.live(func(a *models.ComplementaryActivity) bool {
		return a.StudentID == studentID && a.Status == models.ActivityAccepted
	}), nil
}

// solicitation types

type fakeSolicitationTypes struct {
	*memStore[models.SolicitationType]
}

func typeSolicitationsOf(t *models.SolicitationType) *pq.StringArray { return &t.Solicitations }

func newFakeSolicitationTypes(rows ...models.SolicitationType) *fakeSolicitationTypes {
	store := newMemStore(func(t *models.SolicitationType) *string { return &t.ID },
		func(t *models.SolicitationType) *models.Audit { return &t.Audit }, typeSolicitationsOf)
	store.seed(rows...)
	return &fakeSolicitationTypes{store}
}

func (f *fakeSolicitationTypes) List(_ context.Context, _ models.SolicitationTypeFilter) ([]models.SolicitationType, int, error) {
	return page(f.live(nil))
}
func (f *fakeSolicitationTypes) FindByID(_ context.Context, id string) (*models.SolicitationType, error) {
	return f.find(id)
}
func (f *fakeSolicitationTypes) Create(_ context.Context, t *models.SolicitationType) error {
	return f.create(t)
}
func (f *fakeSolicitationTypes) Update(_ context.Context, t *models.SolicitationType) error {
	return f.update(t)
}
func (f *fakeSolicitationTypes) SoftDelete(_ context.Context, id, actor string) error {
	return f.softDelete(id, actor)
}
func (f *fakeSolicitationTypes) AddSolicitation(_ context.Context, id, ref string) error {
	return f.push(id, typeSolicitationsOf, ref)
}
func (f *fakeSolicitationTypes) RemoveSolicitation(_ context.Context, id, ref string) error {
	return f.pull(id, typeSolicitationsOf, ref)
}

// solicitations

type fakeSolicitations struct {
	*memStore[models.Solicitation]
}

func newFakeSolicitations(rows ...models.Solicitation) *fakeSolicitations {
	store := newMemStore(func(s *models.Solicitation) *string { return &s.ID },
		func(s *models.Solicitation) *models.Audit { return &s.Audit })
	store.seed(rows...)
	return &fakeSolicitations{store}
}

func (f *fakeSolicitations) List(_ context.Context, _ models.SolicitationFilter) ([]models.Solicitation, int, error) {
	return page(f.live(nil))
}
func (f *fakeSolicitations) FindByID(_ context.Context, id string) (*models.Solicitation, error) {
	return f.find(id)
}
func (f *fakeSolicitations) Create(_ context.Context, s *models.Solicitation) error {
	return f.create(s)
}
func (f *fakeSolicitations) Update(_ context.Context, s *models.Solicitation) error {
	return f.update(s)
}
func (f *fakeSolicitations) SoftDelete(_ context.Context, id, actor string) error {
	return f.softDelete(id, actor)
}
func (f *fakeSolicitations) ListIDsByType(_ context.Context, typeID string) ([]string, error) {
	return f.liveIDs(func(s *models.Solicitation) bool { return s.TypeID == typeID }), nil
}
func (f *fakeSolicitations) ListIDsByStudent(_ context.Context, studentID string) ([]string, error) {
	return f.liveIDs(func(s *models.Solicitation) bool { return s.StudentID == studentID }), nil
}

// fixtures

func teacher(id string) models.Person {
	return models.Person{ID: id, Name: "Teacher " + id, Role: models.RoleTeacher}
}

func student(id string) models.Person {
	return models.Person{ID: id, Name: "Student " + id, Role: models.RoleStudent}
}

func claimsFor(personID string, role models.UserRole) *models.JWTClaims {
	return &models.JWTClaims{ID: "u-" + personID, Username: personID, Role: role, PersonID: personID}
}
