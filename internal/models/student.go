package models

import "fmt"

// Student represents a learner registered at the school.
type Student struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	EnrolledCourseIDs []int  `json:"enrolled_course_ids"`
}

// Identifier returns the student ID.
func (s *Student) Identifier() int { return s.ID }

// DisplayInfo renders the short label used in lists.
func (s *Student) DisplayInfo() string {
	return fmt.Sprintf("ID: %d Username: %s", s.ID, s.Name)
}

// IsEnrolledIn reports whether the course ID is on the student's enrollment list.
func (s *Student) IsEnrolledIn(courseID int) bool {
	return containsInt(s.EnrolledCourseIDs, courseID)
}

// Clone returns a deep copy safe to hand outside the registry.
func (s *Student) Clone() Student {
	out := *s
	out.EnrolledCourseIDs = append(make([]int, 0, len(s.EnrolledCourseIDs)), s.EnrolledCourseIDs...)
	return out
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// RemoveInt returns values without the first occurrence of target and whether it was present.
func RemoveInt(values []int, target int) ([]int, bool) {
	for i, v := range values {
		if v == target {
			return append(values[:i:i], values[i+1:]...), true
		}
	}
	return values, false
}
