package registry

import (
	"github.com/AliciaPky/Astar/internal/models"
)

// AddStudent registers a student under the next student ID.
func (r *Registry) AddStudent(name string) *models.Student {
	student := &models.Student{ID: r.nextStudentID, Name: name, EnrolledCourseIDs: make([]int, 0)}
	r.nextStudentID++
	r.students = append(r.students, student)
	r.logAction("ADD_STUDENT", "Added student: %s (ID %d)", student.Name, student.ID)
	r.persist()
	out := student.Clone()
	return &out
}

// EditStudent renames a student. An empty name leaves the record untouched.
func (r *Registry) EditStudent(id int, name string) error {
	student := r.student(id)
	if student == nil {
		return notFound("student %d not found", id)
	}
	old := student.Name
	if name != "" {
		student.Name = name
	}
	r.logAction("EDIT_STUDENT", "Renamed student %s -> %s", old, student.Name)
	r.persist()
	return nil
}

// RemoveStudent deletes a student and strips it from every course roster.
func (r *Registry) RemoveStudent(id int) error {
	idx := r.studentIndex(id)
	if idx < 0 {
		return notFound("student %d not found", id)
	}
	student := r.students[idx]
	r.students = append(r.students[:idx], r.students[idx+1:]...)
	for _, course := range r.courses {
		course.EnrolledStudentIDs, _ = models.RemoveInt(course.EnrolledStudentIDs, id)
	}
	r.logAction("REMOVE_STUDENT", "Removed student: %s", student.Name)
	r.persist()
	return nil
}

// FindStudent returns a copy of the student.
func (r *Registry) FindStudent(id int) (*models.Student, error) {
	student := r.student(id)
	if student == nil {
		return nil, notFound("student %d not found", id)
	}
	out := student.Clone()
	return &out, nil
}

// Students lists every student in registration order.
func (r *Registry) Students() []models.Student {
	out := make([]models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s.Clone())
	}
	return out
}

// AddTeacher registers a teacher under the next teacher ID.
func (r *Registry) AddTeacher(name, speciality string) *models.Teacher {
	teacher := &models.Teacher{ID: r.nextTeacherID, Name: name, Speciality: speciality}
	r.nextTeacherID++
	r.teachers = append(r.teachers, teacher)
	r.logAction("ADD_TEACHER", "Added teacher: %s (ID %d), Speciality: %s", teacher.Name, teacher.ID, teacher.Speciality)
	r.persist()
	out := *teacher
	return &out
}

// EditTeacher overwrites the non-empty fields.
func (r *Registry) EditTeacher(id int, name, speciality string) error {
	teacher := r.teacher(id)
	if teacher == nil {
		return notFound("teacher %d not found", id)
	}
	if name != "" {
		teacher.Name = name
	}
	if speciality != "" {
		teacher.Speciality = speciality
	}
	r.logAction("EDIT_TEACHER", "Edited teacher %d -> %s, Speciality: %s", teacher.ID, teacher.Name, teacher.Speciality)
	r.persist()
	return nil
}

// RemoveTeacher deletes the teacher together with every course it owns, and strips those
// courses from each student's enrollment list.
func (r *Registry) RemoveTeacher(id int) error {
	idx := r.teacherIndex(id)
	if idx < 0 {
		return notFound("teacher %d not found", id)
	}
	teacher := r.teachers[idx]

	kept := r.courses[:0]
	removed := make(map[int]struct{})
	for _, course := range r.courses {
		if course.TeacherID == id {
			removed[course.ID] = struct{}{}
			continue
		}
		kept = append(kept, course)
	}
	r.courses = kept

	if len(removed) > 0 {
		for _, student := range r.students {
			filtered := make([]int, 0, len(student.EnrolledCourseIDs))
			for _, cid := range student.EnrolledCourseIDs {
				if _, gone := removed[cid]; !gone {
					filtered = append(filtered, cid)
				}
			}
			student.EnrolledCourseIDs = filtered
		}
	}

	r.teachers = append(r.teachers[:idx], r.teachers[idx+1:]...)
	r.logAction("REMOVE_TEACHER", "Removed teacher: %s (%d courses removed)", teacher.Name, len(removed))
	r.persist()
	return nil
}

// FindTeacher returns a copy of the teacher.
func (r *Registry) FindTeacher(id int) (*models.Teacher, error) {
	teacher := r.teacher(id)
	if teacher == nil {
		return nil, notFound("teacher %d not found", id)
	}
	out := *teacher
	return &out, nil
}

// Teachers lists every teacher in registration order.
func (r *Registry) Teachers() []models.Teacher {
	out := make([]models.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		out = append(out, *t)
	}
	return out
}

func (r *Registry) student(id int) *models.Student {
	if idx := r.studentIndex(id); idx >= 0 {
		return r.students[idx]
	}
	return nil
}

func (r *Registry) studentIndex(id int) int {
	for i, s := range r.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) teacher(id int) *models.Teacher {
	if idx := r.teacherIndex(id); idx >= 0 {
		return r.teachers[idx]
	}
	return nil
}

func (r *Registry) teacherIndex(id int) int {
	for i, t := range r.teachers {
		if t.ID == id {
			return i
		}
	}
	return -1
}
