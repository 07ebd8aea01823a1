package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/export"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// Teacher панель учителя
type Teacher struct {
	common
}

var (
	_ Dashboard       = (*Teacher)(nil)
	_ AttendanceTaker = (*Teacher)(nil)
)

// Render отрисовывает экран учителя
func (t *Teacher) Render(ctx context.Context, req Request) Screen {
	if !navigation.Allows(t.Role(), req.View) {
		return t.unavailable(req.View)
	}

	class := t.classOf(req)

	switch req.View {
	case navigation.ViewAttendance:
		return t.attendance(ctx, class, req)
	case navigation.ViewAcademics:
		return t.academics(ctx, class)
	case navigation.ViewCommunication:
		return t.noticesScreen(ctx)
	case navigation.ViewAIAssistant:
		return t.assistantScreen()
	default:
		return t.overview(ctx, class, req)
	}
}

func (t *Teacher) classOf(req Request) string {
	switch {
	case req.Class != "":
		return req.Class
	case t.profile.ClassAssigned != "":
		return t.profile.ClassAssigned
	default:
		return model.DefaultClass
	}
}

// Roster ученики класса
func (t *Teacher) Roster(ctx context.Context, class string) base.Result[model.Student] {
	return t.deps.Records.FetchStudentsByClass(ctx, class)
}

// SubmitAttendance сохраняет отметку класса за сегодня
func (t *Teacher) SubmitAttendance(ctx context.Context, class string, present func(string) bool) (model.AttendanceRegister, error) {
	reg, err := t.register(ctx, class, present)
	if err != nil {
		return reg, err
	}

	if err := t.deps.Writer.SaveAttendance(ctx, reg); err != nil {
		return reg, fmt.Errorf("submit attendance: %w", err)
	}

	p, a := reg.Counts()
	t.deps.Logger.Info("Attendance submitted",
		zap.String("teacher_id", t.profile.ID),
		zap.String("class", class),
		zap.Int("present", p),
		zap.Int("absent", a))

	return reg, nil
}

// ExportRegister выгружает текущую отметку класса в xlsx
func (t *Teacher) ExportRegister(ctx context.Context, class string, present func(string) bool) (Document, error) {
	roster := t.Roster(ctx, class)
	if roster.Failed() {
		return Document{}, fmt.Errorf("export register: %w", roster.Err())
	}

	reg := t.buildRegister(class, roster.Items(), present)
	data, err := export.AttendanceRegister(reg, roster.Items())
	if err != nil {
		return Document{}, fmt.Errorf("export register: %w", err)
	}

	return Document{
		Filename: fmt.Sprintf("attendance_%s_%s.xlsx", class, reg.Date),
		Data:     data,
	}, nil
}

func (t *Teacher) register(ctx context.Context, class string, present func(string) bool) (model.AttendanceRegister, error) {
	roster := t.Roster(ctx, class)
	if roster.Failed() {
		return model.AttendanceRegister{}, fmt.Errorf("load roster: %w", roster.Err())
	}
	if roster.IsEmpty() {
		return model.AttendanceRegister{}, fmt.Errorf("class %s has no students", class)
	}
	return t.buildRegister(class, roster.Items(), present), nil
}

func (t *Teacher) buildRegister(class string, students []model.Student, present func(string) bool) model.AttendanceRegister {
	req := Request{Present: present}
	now := t.deps.Now()

	marks := make(map[string]bool, len(students))
	for _, s := range students {
		marks[s.ID] = req.isPresent(s.ID)
	}

	return model.AttendanceRegister{
		ID:        model.AttendanceRegisterID(class, now),
		Class:     class,
		Date:      now.Format(time.DateOnly),
		TakenBy:   t.profile.ID,
		Present:   marks,
		CreatedAt: now.UTC(),
	}
}

func (t *Teacher) overview(ctx context.Context, class string, req Request) Screen {
	roster := t.Roster(ctx, class)

	present := 0
	for s := range roster.All() {
		if req.isPresent(s.ID) {
			present++
		}
	}

	s := Screen{Title: "Welcome, " + t.profile.Name}
	s.Lines = append(s.Lines, failureLine(roster, "students")...)
	s.Lines = append(s.Lines,
		fmt.Sprintf("Class %s Overview", class),
		fmt.Sprintf("Total Strength: %d", roster.Len()),
		fmt.Sprintf("Present Today: %d", present),
		fmt.Sprintf("Absentees: %d", roster.Len()-present),
	)

	s.Actions = append(classActions(class),
		[]Action{
			{Label: "✅ Take Attendance", Kind: ActNavigate, Arg: string(navigation.ViewAttendance)},
			{Label: "📚 Homework", Kind: ActNavigate, Arg: string(navigation.ViewAcademics)},
		},
	)
	return s
}

func (t *Teacher) attendance(ctx context.Context, class string, req Request) Screen {
	roster := t.Roster(ctx, class)

	s := Screen{Title: fmt.Sprintf("Daily Attendance: %s", class)}
	s.Lines = append(s.Lines, failureLine(roster, "students")...)
	if roster.IsEmpty() && !roster.Failed() {
		s.Lines = append(s.Lines, "No students found in this class.")
	}

	for st := range roster.All() {
		mark := "✅"
		if !req.isPresent(st.ID) {
			mark = "❌"
		}
		s.Lines = append(s.Lines, fmt.Sprintf("%s %s. %s", mark, st.RollNo, st.Name))
		s.Actions = append(s.Actions, []Action{{
			Label: fmt.Sprintf("%s %s", mark, st.Name),
			Kind:  ActToggleAttendance,
			Arg:   st.ID,
		}})
	}

	if !roster.IsEmpty() {
		s.Actions = append(s.Actions, []Action{
			{Label: "📤 Submit Attendance", Kind: ActSubmitAttendance},
			{Label: "📊 Export .xlsx", Kind: ActExportRegister},
		})
	}
	s.Actions = append(s.Actions, classActions(class)...)
	return s
}

func (t *Teacher) academics(ctx context.Context, class string) Screen {
	homework := t.deps.Records.FetchHomework(ctx, class)

	s := Screen{Title: fmt.Sprintf("Homework & Assignments: %s", class)}
	s.Lines = append(s.Lines, failureLine(homework, "homework")...)
	if homework.IsEmpty() && !homework.Failed() {
		s.Lines = append(s.Lines, "No homework assignments found.")
	}
	for hw := range homework.All() {
		s.Lines = append(s.Lines,
			fmt.Sprintf("📘 %s: %s (due %s)", hw.Subject, hw.Title, hw.DueDate),
			hw.Description,
			"",
		)
	}

	s.Actions = classActions(class)
	return s
}
