package models

import "fmt"

// Teacher owns zero or more courses.
type Teacher struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
}

// Identifier returns the teacher ID.
func (t *Teacher) Identifier() int { return t.ID }

// DisplayInfo renders the short label used in lists.
func (t *Teacher) DisplayInfo() string {
	return fmt.Sprintf("ID: %d Username: %s, Speciality: %s", t.ID, t.Name, t.Speciality)
}
