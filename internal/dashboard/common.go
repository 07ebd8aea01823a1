package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Freeeeeet/sampark_kvk/internal/assistant"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// common общая часть всех панелей
type common struct {
	profile model.UserProfile
	deps    Deps
}

func (c *common) Role() model.Role { return c.profile.Role }

func (c *common) Profile() model.UserProfile { return c.profile }

func (c *common) Navigation() []navigation.Item { return navigation.For(c.profile.Role) }

func (c *common) Ask(ctx context.Context, prompt string) string {
	if c.deps.Assistant == nil {
		return assistant.UnavailableText
	}
	return c.deps.Assistant.Generate(ctx, prompt, c.profile.Role)
}

func (c *common) title(view navigation.ViewState) string {
	return navigation.Label(c.profile.Role, view)
}

// unavailable экран вне меню роли
func (c *common) unavailable(view navigation.ViewState) Screen {
	return Screen{
		Title: string(view),
		Lines: []string{fmt.Sprintf("This section is not available for the %s role.", c.profile.Role.Title())},
	}
}

func (c *common) assistantScreen() Screen {
	lines := []string{
		"Sampark AI Assistant. " + assistant.Intro(c.profile.Role),
		"",
		assistant.Example(c.profile.Role),
	}
	if c.deps.Assistant == nil || !c.deps.Assistant.Available() {
		lines = append(lines, "", assistant.UnavailableText)
	}

	return Screen{
		Title:   c.title(navigation.ViewAIAssistant),
		Lines:   lines,
		Actions: [][]Action{{{Label: "✍️ Ask the assistant", Kind: ActAskAssistant}}},
	}
}

func (c *common) noticesScreen(ctx context.Context) Screen {
	notices := c.deps.Records.FetchNotices(ctx)

	s := Screen{Title: c.title(navigation.ViewCommunication)}
	s.Lines = append(s.Lines, failureLine(notices, "notices")...)
	if notices.IsEmpty() && !notices.Failed() {
		s.Lines = append(s.Lines, "No notices yet.")
	}
	for n := range notices.All() {
		s.Lines = append(s.Lines,
			fmt.Sprintf("%s %s (%s)", noticeIcon(n.Type), n.Title, n.Date),
			n.Content,
			"Issued by: "+n.Author,
			"",
		)
	}
	return s
}

func (c *common) scheduleScreen(ctx context.Context) Screen {
	notices := c.deps.Records.FetchNotices(ctx)

	var entries []model.Notice
	for n := range notices.All() {
		if n.IsCalendarEntry() {
			entries = append(entries, n)
		}
	}
	slices.SortStableFunc(entries, func(a, b model.Notice) int { return cmp.Compare(a.Date, b.Date) })

	s := Screen{Title: c.title(navigation.ViewSchedule)}
	s.Lines = append(s.Lines, failureLine(notices, "events")...)
	if len(entries) == 0 && !notices.Failed() {
		s.Lines = append(s.Lines, "No upcoming events or holidays.")
	}
	for _, n := range entries {
		s.Lines = append(s.Lines, fmt.Sprintf("%s %s  %s", noticeIcon(n.Type), n.Date, n.Title))
	}
	return s
}

func noticeIcon(t model.NoticeType) string {
	switch t {
	case model.NoticeEvent:
		return "🎉"
	case model.NoticeHoliday:
		return "🏖"
	default:
		return "📘"
	}
}

// failureLine предупреждение, если чтение упало; пустой результат не предупреждает
func failureLine[T any](res base.Result[T], what string) []string {
	if !res.Failed() {
		return nil
	}
	return []string{fmt.Sprintf("⚠️ Could not load %s right now.", what)}
}

func classActions(selected string) [][]Action {
	var rows [][]Action
	var row []Action
	for _, class := range model.ClassOptions {
		label := class
		if class == selected {
			label = "• " + class
		}
		row = append(row, Action{Label: label, Kind: ActSelectClass, Arg: class})
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
