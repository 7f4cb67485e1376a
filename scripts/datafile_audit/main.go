package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/AliciaPky/Astar/internal/models"
	"github.com/AliciaPky/Astar/internal/repository"
)

type finding struct {
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Breaking bool   `json:"breaking"`
}

func main() {
	var (
		dataPath string
		asJSON   bool
	)

	flag.StringVar(&dataPath, "data", filepath.Join("data", "msms.json"), "Path to the registry data file")
	flag.BoolVar(&asJSON, "json", false, "Print findings as JSON")
	flag.Parse()

	snap, err := repository.NewFileStore(dataPath).Load()
	if err != nil {
		log.Fatalf("failed to load %s: %v", dataPath, err)
	}

	findings := audit(snap)
	if err := printReport(os.Stdout, findings, asJSON); err != nil {
		log.Fatalf("failed to print report: %v", err)
	}

	breaking := 0
	for _, f := range findings {
		if f.Breaking {
			breaking++
		}
	}
	fmt.Printf("Breaking findings: %d, Warnings: %d\n", breaking, len(findings)-breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func audit(snap *repository.Snapshot) []finding {
	var out []finding
	add := func(rule string, breaking bool, format string, args ...interface{}) {
		out = append(out, finding{Rule: rule, Message: fmt.Sprintf(format, args...), Breaking: breaking})
	}

	students := make(map[int]models.Student, len(snap.Students))
	for _, s := range snap.Students {
		if _, dup := students[s.ID]; dup {
			add("duplicate_id", true, "student id %d appears more than once", s.ID)
		}
		students[s.ID] = s
	}
	teachers := make(map[int]bool, len(snap.Teachers))
	for _, t := range snap.Teachers {
		if teachers[t.ID] {
			add("duplicate_id", true, "teacher id %d appears more than once", t.ID)
		}
		teachers[t.ID] = true
	}
	courses := make(map[int]models.Course, len(snap.Courses))
	for _, c := range snap.Courses {
		if _, dup := courses[c.ID]; dup {
			add("duplicate_id", true, "course id %d appears more than once", c.ID)
		}
		courses[c.ID] = c
	}
	checkAccountIDs(snap, add)

	for _, c := range snap.Courses {
		if !teachers[c.TeacherID] {
			add("dangling_teacher", false, "course %d (%s) references missing teacher %d", c.ID, c.Name, c.TeacherID)
		}
		for _, sid := range c.EnrolledStudentIDs {
			student, ok := students[sid]
			if !ok {
				add("dangling_student", true, "course %d lists missing student %d", c.ID, sid)
				continue
			}
			if !student.IsEnrolledIn(c.ID) {
				add("asymmetric_enrollment", true, "course %d lists student %d but the student does not list the course", c.ID, sid)
			}
		}
		for _, l := range c.Lessons {
			if _, ok := models.NormalizeWeekday(l.Day); !ok {
				add("invalid_weekday", false, "course %d lesson %q has day %q", c.ID, l.Title, l.Day)
			}
		}
	}
	for _, s := range snap.Students {
		for _, cid := range s.EnrolledCourseIDs {
			course, ok := courses[cid]
			if !ok {
				add("dangling_course", true, "student %d lists missing course %d", s.ID, cid)
				continue
			}
			if !course.HasStudent(s.ID) {
				add("asymmetric_enrollment", true, "student %d lists course %d but the course does not list the student", s.ID, cid)
			}
		}
	}

	checkCounter(add, "student", snap.NextStudentID, maxID(snap.Students, func(s models.Student) int { return s.ID }))
	checkCounter(add, "teacher", snap.NextTeacherID, maxID(snap.Teachers, func(t models.Teacher) int { return t.ID }))
	checkCounter(add, "course", snap.NextCourseID, maxID(snap.Courses, func(c models.Course) int { return c.ID }))
	checkCounter(add, "admin", snap.NextAdminID, maxID(snap.Admins, func(a models.AdminAccount) int { return a.ID }))
	checkCounter(add, "staff", snap.NextStaffID, maxID(snap.Staff, func(s models.StaffAccount) int { return s.ID }))

	if len(snap.Admins) == 0 {
		add("no_admin", false, "no administrator account; one will be bootstrapped on next start if enabled")
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Breaking != out[j].Breaking {
			return out[i].Breaking
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

func checkAccountIDs(snap *repository.Snapshot, add func(string, bool, string, ...interface{})) {
	seen := make(map[int]bool)
	for _, a := range snap.Admins {
		if seen[a.ID] {
			add("duplicate_id", true, "admin id %d appears more than once", a.ID)
		}
		seen[a.ID] = true
	}
	seen = make(map[int]bool)
	for _, s := range snap.Staff {
		if seen[s.ID] {
			add("duplicate_id", true, "staff id %d appears more than once", s.ID)
		}
		seen[s.ID] = true
	}
}

func checkCounter(add func(string, bool, string, ...interface{}), kind string, next, highest int) {
	if next == 0 || highest == 0 {
		return
	}
	if next <= highest {
		add("stale_counter", false, "next_%s_id is %d but the highest %s id is %d; it will be raised on load", kind, next, kind, highest)
	}
}

func maxID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest
}

func printReport(w io.Writer, findings []finding, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if findings == nil {
			findings = []finding{}
		}
		return enc.Encode(findings)
	}
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "No findings")
		return err
	}
	for _, f := range findings {
		level := "WARN"
		if f.Breaking {
			level = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "[%s] %-22s %s\n", level, f.Rule, f.Message); err != nil {
			return err
		}
	}
	return nil
}
