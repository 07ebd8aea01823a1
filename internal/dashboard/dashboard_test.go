package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/assistant"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/repository"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/memory"
)

var fixedNow = time.Date(2024, 10, 21, 9, 0, 0, 0, time.UTC)

func seededDeps(t *testing.T) (Deps, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	g := repository.NewGateway(store, zap.NewNop())
	_, err := g.SeedFixtures(context.Background())
	require.NoError(t, err)

	return Deps{
		Records:   g,
		Writer:    g,
		Assistant: assistant.NewBridge(nil, zap.NewNop()),
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return fixedNow },
	}, store
}

func text(s Screen) string {
	return s.Title + "\n" + strings.Join(s.Lines, "\n")
}

func hasAction(s Screen, kind ActionKind, arg string) bool {
	for _, row := range s.Actions {
		for _, a := range row {
			if a.Kind == kind && a.Arg == arg {
				return true
			}
		}
	}
	return false
}

func TestFor_SelectsByRole(t *testing.T) {
	deps, _ := seededDeps(t)

	tests := []struct {
		role model.Role
		want any
	}{
		{model.RoleAdmin, &Admin{}},
		{model.RoleTeacher, &Teacher{}},
		{model.RoleParent, &Parent{}},
		{model.Role("owner"), &Teacher{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			d := For(model.UserProfile{ID: "u", Name: "U", Role: tt.role}, deps)
			assert.IsType(t, tt.want, d)
			assert.Equal(t, navigation.For(d.Role()), d.Navigation())
		})
	}

	_, isSeeder := For(model.UserProfile{Role: model.RoleTeacher}, deps).(Seeder)
	assert.False(t, isSeeder)
	_, isTaker := For(model.UserProfile{Role: model.RoleParent}, deps).(AttendanceTaker)
	assert.False(t, isTaker)
}

func TestRender_ViewOutsideMenu(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("p", "Suresh", "", model.RoleParent), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewAdminUsers})
	assert.Contains(t, text(s), "not available for the Parent role")
}

func TestAdmin_Overview(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("a", "Admin", "", model.RoleAdmin), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewDashboard})
	out := text(s)

	assert.Contains(t, out, "Total Students: 4")
	assert.Contains(t, out, "Upcoming Events: 2")
	assert.Contains(t, out, "X-A: 94% (2)")
	assert.True(t, hasAction(s, ActSeed, ""))
}

func TestAdmin_SeedIdempotent(t *testing.T) {
	deps, store := seededDeps(t)
	d := For(model.NewProfile("a", "Admin", "", model.RoleAdmin), deps)

	seeder, ok := d.(Seeder)
	require.True(t, ok)

	stats, err := seeder.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Students)
	assert.Equal(t, 4, store.Count(storage.CollectionStudents))
}

func TestAdmin_Users(t *testing.T) {
	deps, _ := seededDeps(t)
	g := deps.Records.(*repository.Gateway)
	require.NoError(t, g.SaveProfile(context.Background(), model.NewProfile("t1", "Mrs. Verma", "verma@x.com", model.RoleTeacher)))

	d := For(model.NewProfile("a", "Admin", "", model.RoleAdmin), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewAdminUsers})
	assert.Contains(t, text(s), "Mrs. Verma · verma@x.com · class X-A")
	assert.True(t, hasAction(s, ActFilterUsers, "parent"))

	s = d.Render(context.Background(), Request{View: navigation.ViewAdminUsers, UserRole: model.RoleParent})
	assert.Contains(t, text(s), "No users with this role yet.")
}

func TestTeacher_Attendance(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("t1", "Mrs. Verma", "", model.RoleTeacher), deps)

	absent := func(id string) bool { return id != "S102" }
	s := d.Render(context.Background(), Request{View: navigation.ViewAttendance, Class: "X-A", Present: absent})
	out := text(s)

	assert.Contains(t, out, "✅ 12. Aarav Patel")
	assert.Contains(t, out, "❌ 13. Diya Sharma")
	assert.NotContains(t, out, "Ishaan")
	assert.True(t, hasAction(s, ActToggleAttendance, "S101"))
	assert.True(t, hasAction(s, ActSubmitAttendance, ""))

	s = d.Render(context.Background(), Request{View: navigation.ViewDashboard, Class: "X-A", Present: absent})
	assert.Contains(t, text(s), "Present Today: 1")
	assert.Contains(t, text(s), "Absentees: 1")
}

func TestTeacher_SubmitAndExport(t *testing.T) {
	deps, store := seededDeps(t)
	d := For(model.NewProfile("t1", "Mrs. Verma", "", model.RoleTeacher), deps)

	taker, ok := d.(AttendanceTaker)
	require.True(t, ok)

	reg, err := taker.SubmitAttendance(context.Background(), "X-A", func(id string) bool { return id == "S101" })
	require.NoError(t, err)
	assert.Equal(t, "X-A:2024-10-21", reg.ID)
	assert.Equal(t, map[string]bool{"S101": true, "S102": false}, reg.Present)
	assert.Equal(t, 1, store.Count(storage.CollectionAttendance))

	_, err = taker.SubmitAttendance(context.Background(), "XII-Sci", nil)
	assert.Error(t, err)

	doc, err := taker.ExportRegister(context.Background(), "X-A", nil)
	require.NoError(t, err)
	assert.Equal(t, "attendance_X-A_2024-10-21.xlsx", doc.Filename)
	assert.NotEmpty(t, doc.Data)
}

func TestTeacher_Academics(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("t1", "Mrs. Verma", "", model.RoleTeacher), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewAcademics, Class: "VI-B"})
	assert.Contains(t, text(s), "Poem Comprehension")
	assert.NotContains(t, text(s), "Quadratic")

	s = d.Render(context.Background(), Request{View: navigation.ViewAcademics, Class: "XII-Sci"})
	assert.Contains(t, text(s), "No homework assignments found.")
}

func TestParent_Academics(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("p", "Suresh", "", model.RoleParent), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewAcademics})
	out := text(s)

	assert.Contains(t, out, "Mathematics (Mid-Term): 78/80  A1")
	assert.Contains(t, out, "Total: 363/400")
	assert.Contains(t, out, "Quadratic Equations")
	assert.NotContains(t, out, "Poem Comprehension")
	assert.True(t, hasAction(s, ActExportReportCard, ""))

	exporter, ok := d.(ReportCardExporter)
	require.True(t, ok)
	doc, err := exporter.ExportReportCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "report_card_S101.xlsx", doc.Filename)
}

func TestParent_NoWard(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.UserProfile{ID: "p", Name: "P", Role: model.RoleParent, StudentID: "S999"}, deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewDashboard})
	assert.Contains(t, text(s), "No student is linked")

	_, err := d.(ReportCardExporter).ExportReportCard(context.Background())
	assert.ErrorIs(t, err, ErrNoWard)
}

type brokenRecords struct {
	Records
}

var errDown = errors.New("store down")

func (brokenRecords) FetchNotices(context.Context) base.Result[model.Notice] {
	return base.Failed[model.Notice](errDown)
}

func TestRender_ReadFailureShowsWarning(t *testing.T) {
	deps, _ := seededDeps(t)
	deps.Records = brokenRecords{Records: deps.Records}
	d := For(model.NewProfile("a", "Admin", "", model.RoleAdmin), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewCommunication})
	assert.Contains(t, text(s), "Could not load notices")
	assert.NotContains(t, text(s), "No notices yet.")
}

func TestCommunicationAndSchedule(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("p", "Suresh", "", model.RoleParent), deps)

	s := d.Render(context.Background(), Request{View: navigation.ViewCommunication})
	assert.Contains(t, text(s), "Annual Sports Meet 2024")
	assert.Contains(t, text(s), "Issued by: Exam Cell")

	s = d.Render(context.Background(), Request{View: navigation.ViewSchedule})
	require.Len(t, s.Lines, 2)
	assert.Contains(t, s.Lines[0], "Diwali Holidays")
	assert.Contains(t, s.Lines[1], "Annual Sports Meet")
}

func TestAsk(t *testing.T) {
	deps, _ := seededDeps(t)
	d := For(model.NewProfile("t", "T", "", model.RoleTeacher), deps)

	assert.Equal(t, assistant.UnavailableText, d.Ask(context.Background(), "quiz on fractions"))

	s := d.Render(context.Background(), Request{View: navigation.ViewAIAssistant})
	assert.Equal(t, "Lesson Planner", s.Title)
	assert.True(t, hasAction(s, ActAskAssistant, ""))
}
