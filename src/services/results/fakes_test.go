package results

import (
	"Backend-Results/src/models"
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStudents / memoryResults จำลอง semantics ของ MongoStore ในหน่วยความจำ
type memoryStudents struct {
	mu       sync.Mutex
	byGR     map[string]*models.Student
	failOnGR map[string]error
	upserts  int
}

func newMemoryStudents() *memoryStudents {
	return &memoryStudents{byGR: map[string]*models.Student{}, failOnGR: map[string]error{}}
}

func (m *memoryStudents) UpsertByGRNumber(_ context.Context, s *models.Student) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++

	if err := m.failOnGR[s.GRNumber]; err != nil {
		return nil, err
	}
	existing, ok := m.byGR[s.GRNumber]
	if !ok {
		existing = &models.Student{ID: primitive.NewObjectID(), GRNumber: s.GRNumber}
		m.byGR[s.GRNumber] = existing
	}
	existing.Name = s.Name
	existing.RollNumber = s.RollNumber
	existing.Standard = s.Standard
	existing.Stream = s.Stream

	out := *existing
	return &out, nil
}

func (m *memoryStudents) FindByGRNumber(_ context.Context, grNumber string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byGR[grNumber]
	if !ok {
		return nil, models.ErrStudentNotFound
	}
	out := *s
	return &out, nil
}

func (m *memoryStudents) FindForLookup(_ context.Context, identifier, standard, stream string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byGR {
		if s.GRNumber != identifier && s.RollNumber != identifier {
			continue
		}
		if s.Standard != standard {
			continue
		}
		if models.StreamRequired(standard) && s.Stream != stream {
			continue
		}
		out := *s
		return &out, nil
	}
	return nil, models.ErrStudentNotFound
}

type resultKey struct {
	studentID    primitive.ObjectID
	academicYear string
}

type memoryResults struct {
	mu      sync.Mutex
	byKey   map[resultKey]*models.Result
	failErr error
}

func newMemoryResults() *memoryResults {
	return &memoryResults{byKey: map[resultKey]*models.Result{}}
}

func (m *memoryResults) Upsert(_ context.Context, r *models.Result) (*models.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}

	key := resultKey{r.StudentID, r.AcademicYear}
	existing, ok := m.byKey[key]
	if !ok {
		existing = &models.Result{ID: primitive.NewObjectID(), StudentID: r.StudentID, AcademicYear: r.AcademicYear}
		m.byKey[key] = existing
	}
	existing.Subjects = append([]models.Subject(nil), r.Subjects...)
	existing.TotalMarks = r.TotalMarks
	existing.Percentage = r.Percentage
	existing.Grade = r.Grade

	out := *existing
	return &out, nil
}

func (m *memoryResults) FindLatest(ctx context.Context, studentID primitive.ObjectID) (*models.Result, error) {
	all, _ := m.FindByStudent(ctx, studentID)
	if len(all) == 0 {
		return nil, models.ErrResultNotFound
	}
	return &all[0], nil
}

func (m *memoryResults) FindByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Result{}
	for k, r := range m.byKey {
		if k.studentID == studentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AcademicYear > out[j].AcademicYear })
	return out, nil
}

func (m *memoryResults) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byKey)
}
