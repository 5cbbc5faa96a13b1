package repository

import (
	"sync"

	"github.com/eduops/scheduling-api/internal/models"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

// Directory is the aggregate root owning all students, teachers and
// sessions for one roster. Iteration order over every collection is
// insertion order, which keeps tie-breaking in the assignment engine
// deterministic.
//
// Engine operations are multi-step read-modify-write sequences, so the
// Directory exposes closure-scoped units of work instead of individually
// locked accessors: Update for mutations, View for reads. Each closure
// runs under a single lock acquisition.
type Directory struct {
	mu sync.RWMutex

	students map[string]*models.Student
	teachers map[string]*models.Teacher
	sessions map[string]*models.Session

	studentOrder []string
	teacherOrder []string
	sessionOrder []string
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		students: make(map[string]*models.Student),
		teachers: make(map[string]*models.Teacher),
		sessions: make(map[string]*models.Session),
	}
}

// Tx is a unit of work over the directory. It must not escape the
// closure it was handed to.
type Tx struct {
	d *Directory
}

// Update runs fn with exclusive access to the directory.
func (d *Directory) Update(fn func(tx *Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(&Tx{d: d})
}

// View runs fn with shared read access. The closure must not mutate
// any entity it reads.
func (d *Directory) View(fn func(tx *Tx) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fn(&Tx{d: d})
}

// AddStudent inserts a new student, rejecting duplicate identifiers.
func (tx *Tx) AddStudent(id, name string) (*models.Student, error) {
	if _, exists := tx.d.students[id]; exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateID, "student id already in use: "+id)
	}
	student := models.NewStudent(id, name)
	tx.d.students[id] = student
	tx.d.studentOrder = append(tx.d.studentOrder, id)
	return student, nil
}

// AddTeacher inserts a new teacher, rejecting duplicate identifiers.
func (tx *Tx) AddTeacher(id, name string) (*models.Teacher, error) {
	if _, exists := tx.d.teachers[id]; exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateID, "teacher id already in use: "+id)
	}
	teacher := models.NewTeacher(id, name)
	tx.d.teachers[id] = teacher
	tx.d.teacherOrder = append(tx.d.teacherOrder, id)
	return teacher, nil
}

// AddSession inserts a session, rejecting duplicate identifiers.
func (tx *Tx) AddSession(session *models.Session) error {
	if _, exists := tx.d.sessions[session.ID]; exists {
		return appErrors.Clone(appErrors.ErrDuplicateID, "session id already in use: "+session.ID)
	}
	tx.d.sessions[session.ID] = session
	tx.d.sessionOrder = append(tx.d.sessionOrder, session.ID)
	return nil
}

// Student resolves a student id.
func (tx *Tx) Student(id string) (*models.Student, error) {
	if student, ok := tx.d.students[id]; ok {
		return student, nil
	}
	return nil, appErrors.ErrUnknownStudent
}

// Teacher resolves a teacher id.
func (tx *Tx) Teacher(id string) (*models.Teacher, error) {
	if teacher, ok := tx.d.teachers[id]; ok {
		return teacher, nil
	}
	return nil, appErrors.ErrUnknownTeacher
}

// Session resolves a session id.
func (tx *Tx) Session(id string) (*models.Session, error) {
	if session, ok := tx.d.sessions[id]; ok {
		return session, nil
	}
	return nil, appErrors.ErrUnknownSession
}

// Person resolves an id against students first, then teachers.
func (tx *Tx) Person(id string) (*models.Person, error) {
	if student, ok := tx.d.students[id]; ok {
		return &student.Person, nil
	}
	if teacher, ok := tx.d.teachers[id]; ok {
		return &teacher.Person, nil
	}
	return nil, appErrors.ErrUnknownPerson
}

// Students returns all students in insertion order.
func (tx *Tx) Students() []*models.Student {
	result := make([]*models.Student, 0, len(tx.d.studentOrder))
	for _, id := range tx.d.studentOrder {
		result = append(result, tx.d.students[id])
	}
	return result
}

// Teachers returns all teachers in insertion order.
func (tx *Tx) Teachers() []*models.Teacher {
	result := make([]*models.Teacher, 0, len(tx.d.teacherOrder))
	for _, id := range tx.d.teacherOrder {
		result = append(result, tx.d.teachers[id])
	}
	return result
}

// Sessions returns all sessions in insertion order.
func (tx *Tx) Sessions() []*models.Session {
	result := make([]*models.Session, 0, len(tx.d.sessionOrder))
	for _, id := range tx.d.sessionOrder {
		result = append(result, tx.d.sessions[id])
	}
	return result
}
