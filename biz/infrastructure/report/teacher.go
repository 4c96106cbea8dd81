package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	CoursesSheet = "Courses"
)

type CourseRow struct {
	CourseID     string
	Title        string
	Students     int
	Assignments  int
	Submissions  int
	AverageGrade float64
}

type TeacherReport struct {
	Teacher          string
	GeneratedAt      time.Time
	TotalCourses     int
	TotalStudents    int
	TotalAssignments int
	TotalSubmissions int
	Courses          []CourseRow
}

// WriteTeacherReport renders r as an xlsx workbook with a summary sheet and
// one row per course.
func WriteTeacherReport(r *TeacherReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Teacher", r.Teacher},
		{"Generated At", r.GeneratedAt.Format(time.RFC3339)},
		{"Total Courses", r.TotalCourses},
		{"Total Students", r.TotalStudents},
		{"Total Assignments", r.TotalAssignments},
		{"Total Submissions", r.TotalSubmissions},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(SummarySheet, cell(i+1), &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(CoursesSheet); err != nil {
		return nil, err
	}
	header := []any{"Course ID", "Title", "Students", "Assignments", "Submissions", "Average Grade"}
	if err := f.SetSheetRow(CoursesSheet, cell(1), &header); err != nil {
		return nil, err
	}
	for i, c := range r.Courses {
		row := []any{c.CourseID, c.Title, c.Students, c.Assignments, c.Submissions, c.AverageGrade}
		if err := f.SetSheetRow(CoursesSheet, cell(i+2), &row); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}

func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}
