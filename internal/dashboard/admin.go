package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/repository"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// Admin панель администратора
type Admin struct {
	common
}

var (
	_ Dashboard = (*Admin)(nil)
	_ Seeder    = (*Admin)(nil)
)

// Render отрисовывает экран администратора
func (a *Admin) Render(ctx context.Context, req Request) Screen {
	if !navigation.Allows(a.Role(), req.View) {
		return a.unavailable(req.View)
	}

	switch req.View {
	case navigation.ViewAdminUsers:
		return a.users(ctx, req.UserRole)
	case navigation.ViewCommunication:
		return a.noticesScreen(ctx)
	case navigation.ViewSchedule:
		return a.scheduleScreen(ctx)
	case navigation.ViewAIAssistant:
		return a.assistantScreen()
	default:
		return a.overview(ctx)
	}
}

// Seed заполняет хранилище демо-данными
func (a *Admin) Seed(ctx context.Context) (repository.SeedStats, error) {
	stats, err := a.deps.Writer.SeedFixtures(ctx)
	if err != nil {
		a.deps.Logger.Error("Seeding failed",
			zap.String("admin_id", a.profile.ID),
			zap.Error(err))
		return stats, err
	}
	return stats, nil
}

func (a *Admin) overview(ctx context.Context) Screen {
	var (
		students base.Result[model.Student]
		teachers base.Result[model.UserProfile]
		notices  base.Result[model.Notice]
	)

	// слоты независимы, ошибки чтения уже внутри Result
	var g errgroup.Group
	g.Go(func() error { students = a.deps.Records.FetchAllStudents(ctx); return nil })
	g.Go(func() error { teachers = a.deps.Records.FetchProfilesByRole(ctx, model.RoleTeacher); return nil })
	g.Go(func() error { notices = a.deps.Records.FetchNotices(ctx); return nil })
	_ = g.Wait()

	events := 0
	for n := range notices.All() {
		if n.IsCalendarEntry() {
			events++
		}
	}

	s := Screen{Title: a.title(navigation.ViewDashboard)}
	s.Lines = append(s.Lines, failureLine(students, "students")...)
	s.Lines = append(s.Lines, failureLine(teachers, "teachers")...)
	s.Lines = append(s.Lines, failureLine(notices, "notices")...)
	s.Lines = append(s.Lines,
		fmt.Sprintf("👥 Total Students: %d", students.Len()),
		fmt.Sprintf("🧑‍🏫 Teachers: %d", teachers.Len()),
		fmt.Sprintf("✅ Average Attendance: %s", averageAttendance(students.Items())),
		fmt.Sprintf("📅 Upcoming Events: %d", events),
	)

	if byClass := attendanceByClass(students.Items()); len(byClass) > 0 {
		s.Lines = append(s.Lines, "", "Attendance by class:")
		s.Lines = append(s.Lines, byClass...)
	}

	if students.IsEmpty() && !students.Failed() {
		s.Lines = append(s.Lines, "", "The database is empty. Seed it with demo data to get started.")
	}

	s.Actions = [][]Action{
		{{Label: "🗄 Seed Database (Mock Data)", Kind: ActSeed}},
		{{Label: "👥 Manage Users", Kind: ActNavigate, Arg: string(navigation.ViewAdminUsers)}},
	}
	return s
}

func (a *Admin) users(ctx context.Context, role model.Role) Screen {
	if !role.Valid() {
		role = model.RoleTeacher
	}

	profiles := a.deps.Records.FetchProfilesByRole(ctx, role)

	s := Screen{Title: fmt.Sprintf("%s: %ss", a.title(navigation.ViewAdminUsers), role.Title())}
	s.Lines = append(s.Lines, failureLine(profiles, "users")...)
	if profiles.IsEmpty() && !profiles.Failed() {
		s.Lines = append(s.Lines, "No users with this role yet.")
	}
	for p := range profiles.All() {
		s.Lines = append(s.Lines, describeProfile(p))
	}

	var filters []Action
	for _, r := range model.Roles {
		label := r.Title() + "s"
		if r == role {
			label = "• " + label
		}
		filters = append(filters, Action{Label: label, Kind: ActFilterUsers, Arg: string(r)})
	}
	s.Actions = [][]Action{filters}
	return s
}

func describeProfile(p model.UserProfile) string {
	parts := []string{p.Name}
	if p.Email != "" {
		parts = append(parts, p.Email)
	}
	switch {
	case p.ClassAssigned != "":
		parts = append(parts, "class "+p.ClassAssigned)
	case p.StudentID != "":
		parts = append(parts, "ward "+p.StudentID)
	}
	return strings.Join(parts, " · ")
}

func averageAttendance(students []model.Student) string {
	if len(students) == 0 {
		return "n/a"
	}
	sum := 0
	for _, s := range students {
		sum += s.AttendancePercent()
	}
	return fmt.Sprintf("%d%%", sum/len(students))
}

// attendanceByClass средняя посещаемость по классам, в порядке ClassOptions
func attendanceByClass(students []model.Student) []string {
	type acc struct{ sum, n int }
	byClass := make(map[string]*acc)
	for _, s := range students {
		a, ok := byClass[s.Class]
		if !ok {
			a = &acc{}
			byClass[s.Class] = a
		}
		a.sum += s.AttendancePercent()
		a.n++
	}

	classes := make([]string, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	slices.SortFunc(classes, func(x, y string) int {
		return cmp.Compare(classRank(x), classRank(y))
	})

	lines := make([]string, 0, len(classes))
	for _, class := range classes {
		a := byClass[class]
		lines = append(lines, fmt.Sprintf("  %s: %d%% (%d)", class, a.sum/a.n, a.n))
	}
	return lines
}

func classRank(class string) int {
	if i := slices.Index(model.ClassOptions, class); i >= 0 {
		return i
	}
	return len(model.ClassOptions)
}
