package dashboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/sampark_kvk/internal/export"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// ErrNoWard к профилю родителя не привязан ученик
var ErrNoWard = errors.New("no student is linked to this parent")

// Parent панель родителя
type Parent struct {
	common
}

var (
	_ Dashboard          = (*Parent)(nil)
	_ ReportCardExporter = (*Parent)(nil)
)

// ward данные ученика для экранов родителя
type ward struct {
	student  base.Result[model.Student]
	marks    base.Result[model.ExamMark]
	homework base.Result[model.Homework]
	notices  base.Result[model.Notice]
}

// Render отрисовывает экран родителя
func (p *Parent) Render(ctx context.Context, req Request) Screen {
	if !navigation.Allows(p.Role(), req.View) {
		return p.unavailable(req.View)
	}

	switch req.View {
	case navigation.ViewAcademics:
		return p.academics(ctx)
	case navigation.ViewCommunication:
		return p.noticesScreen(ctx)
	case navigation.ViewSchedule:
		return p.scheduleScreen(ctx)
	case navigation.ViewAIAssistant:
		return p.assistantScreen()
	default:
		return p.overview(ctx)
	}
}

// load читает ученика, оценки, задания его класса и объявления.
// Всё, кроме заданий, читается параллельно; задания ждут класс ученика.
func (p *Parent) load(ctx context.Context) ward {
	var w ward
	studentID := p.profile.StudentID

	var g errgroup.Group
	g.Go(func() error { w.student = p.deps.Records.FetchStudent(ctx, studentID); return nil })
	g.Go(func() error { w.marks = p.deps.Records.FetchMarks(ctx, studentID); return nil })
	g.Go(func() error { w.notices = p.deps.Records.FetchNotices(ctx); return nil })
	_ = g.Wait()

	if st, ok := w.student.First(); ok {
		w.homework = p.deps.Records.FetchHomework(ctx, st.Class)
	}
	return w
}

func (p *Parent) overview(ctx context.Context) Screen {
	w := p.load(ctx)

	st, ok := w.student.First()
	if !ok {
		return p.noWard(w.student)
	}

	s := Screen{Title: st.Name}
	s.Lines = append(s.Lines,
		fmt.Sprintf("Class: %s | Roll No: %s", st.Class, st.RollNo),
		fmt.Sprintf("Attendance: %d%%", st.AttendancePercent()),
		"",
		"Latest Updates:",
	)
	s.Lines = append(s.Lines, failureLine(w.homework, "homework")...)
	s.Lines = append(s.Lines, failureLine(w.notices, "notices")...)

	for hw := range w.homework.All() {
		s.Lines = append(s.Lines, "📘 New Homework: "+hw.Subject)
	}
	for n := range w.notices.All() {
		s.Lines = append(s.Lines, "📢 Notice: "+n.Title)
	}

	s.Actions = [][]Action{{
		{Label: "📚 Homework & Results", Kind: ActNavigate, Arg: string(navigation.ViewAcademics)},
	}}
	return s
}

func (p *Parent) academics(ctx context.Context) Screen {
	w := p.load(ctx)

	st, ok := w.student.First()
	if !ok {
		return p.noWard(w.student)
	}

	s := Screen{Title: fmt.Sprintf("%s: %s", p.title(navigation.ViewAcademics), st.Name)}

	s.Lines = append(s.Lines, "Exam Results:")
	s.Lines = append(s.Lines, failureLine(w.marks, "exam results")...)
	if w.marks.IsEmpty() && !w.marks.Failed() {
		s.Lines = append(s.Lines, "No results published yet.")
	}
	for m := range w.marks.All() {
		s.Lines = append(s.Lines, fmt.Sprintf("%s (%s): %d/%d  %s", m.Subject, m.ExamType, m.Marks, m.Total, m.Grade()))
	}
	if !w.marks.IsEmpty() {
		scored, total := model.Totals(w.marks.Items())
		s.Lines = append(s.Lines, fmt.Sprintf("Total: %d/%d", scored, total))
	}

	s.Lines = append(s.Lines, "", "Pending Homework:")
	s.Lines = append(s.Lines, failureLine(w.homework, "homework")...)
	if w.homework.IsEmpty() && !w.homework.Failed() {
		s.Lines = append(s.Lines, "No pending homework.")
	}
	for hw := range w.homework.All() {
		s.Lines = append(s.Lines, fmt.Sprintf("📘 %s: %s (due %s)", hw.Subject, hw.Title, hw.DueDate))
	}

	s.Actions = [][]Action{{{Label: "📄 Download Report Card", Kind: ActExportReportCard}}}
	return s
}

func (p *Parent) noWard(res base.Result[model.Student]) Screen {
	s := Screen{Title: p.title(navigation.ViewDashboard)}
	s.Lines = append(s.Lines, failureLine(res, "student details")...)
	if !res.Failed() {
		s.Lines = append(s.Lines, "No student is linked to your account yet.")
	}
	return s
}

// ExportReportCard выгружает табель ученика в xlsx
func (p *Parent) ExportReportCard(ctx context.Context) (Document, error) {
	student := p.deps.Records.FetchStudent(ctx, p.profile.StudentID)
	st, ok := student.First()
	if !ok {
		if student.Failed() {
			return Document{}, fmt.Errorf("export report card: %w", student.Err())
		}
		return Document{}, ErrNoWard
	}

	marks := p.deps.Records.FetchMarks(ctx, st.ID)
	if marks.Failed() {
		return Document{}, fmt.Errorf("export report card: %w", marks.Err())
	}

	data, err := export.ReportCard(st, marks.Items())
	if err != nil {
		return Document{}, fmt.Errorf("export report card: %w", err)
	}

	return Document{
		Filename: fmt.Sprintf("report_card_%s.xlsx", st.ID),
		Data:     data,
	}, nil
}
