package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

func TestActionData(t *testing.T) {
	tests := []struct {
		action dashboard.Action
		want   string
	}{
		{action: dashboard.Action{Kind: dashboard.ActSeed}, want: "seed"},
		{action: dashboard.Action{Kind: dashboard.ActNavigate, Arg: "ATTENDANCE"}, want: "nav:ATTENDANCE"},
		{action: dashboard.Action{Kind: dashboard.ActToggleAttendance, Arg: "S101"}, want: "att:S101"},
		{action: dashboard.Action{Kind: dashboard.ActFilterUsers, Arg: "parent"}, want: "users:parent"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionData(tt.action))
		})
	}
}

func TestParseArg(t *testing.T) {
	arg, err := ParseArg("class:X-B", "class")
	require.NoError(t, err)
	assert.Equal(t, "X-B", arg)

	for _, data := range []string{"class:", "class", "nav:X-B"} {
		_, err := ParseArg(data, "class")
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}

func TestFormatScreenEscapesHTML(t *testing.T) {
	profile := model.UserProfile{Name: "Ravi <Admin>", Role: model.RoleAdmin}
	text := FormatScreen(profile, dashboard.Screen{
		Title: "Overview",
		Lines: []string{"Math & Science", "a < b"},
	})

	assert.True(t, strings.HasPrefix(text, "<b>Overview</b>\n<i>Ravi &lt;Admin&gt; · Admin</i>"))
	assert.Contains(t, text, "Math &amp; Science\na &lt; b")
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestScreenKeyboard(t *testing.T) {
	screen := dashboard.Screen{
		Actions: [][]dashboard.Action{
			{{Label: "Submit", Kind: dashboard.ActSubmitAttendance}, {Label: "Export", Kind: dashboard.ActExportRegister}},
		},
	}
	items := navigation.For(model.RoleTeacher)

	kb := ScreenKeyboard(screen, items, navigation.ViewAttendance)
	rows := kb.InlineKeyboard

	require.NotEmpty(t, rows)
	assert.Equal(t, "att_submit", rows[0][0].CallbackData)
	assert.Equal(t, "att_export", rows[0][1].CallbackData)

	// меню роли по два пункта и кнопка выхода последней
	wantNavRows := (len(items) + 1) / 2
	assert.Len(t, rows, 1+wantNavRows+1)
	assert.Equal(t, "logout", rows[len(rows)-1][0].CallbackData)

	var marked []string
	for _, row := range rows[1 : len(rows)-1] {
		for _, btn := range row {
			assert.True(t, strings.HasPrefix(btn.CallbackData, "nav:"))
			if strings.HasPrefix(btn.Text, "• ") {
				marked = append(marked, btn.CallbackData)
			}
		}
	}
	assert.Equal(t, []string{"nav:ATTENDANCE"}, marked)
}

func TestTruncate(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, Truncate(short, 10))

	lines := strings.Repeat("line &amp; more\n", 10)
	got := Truncate(lines, 40)
	assert.LessOrEqual(t, len(got), 40)
	assert.Equal(t, "line &amp; more\nline &amp; more\n…", got)

	// без переводов строк режем по границе символа
	runes := strings.Repeat("я", 30)
	got = Truncate(runes, 21)
	assert.LessOrEqual(t, len(got), 21)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, strings.Repeat("я", 8)+"\n…", got)
}
