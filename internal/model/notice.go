package model

// NoticeType тип объявления
type NoticeType string

const (
	NoticeAcademic NoticeType = "academic"
	NoticeEvent    NoticeType = "event"
	NoticeHoliday  NoticeType = "holiday"
)

// Notice объявление или циркуляр
type Notice struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Date    string     `json:"date"`
	Content string     `json:"content"`
	Type    NoticeType `json:"type"`
	Author  string     `json:"author"`
}

// SetID устанавливает идентификатор документа
func (n *Notice) SetID(id string) { n.ID = id }

// IsCalendarEntry true для событий и каникул, которые попадают в расписание
func (n Notice) IsCalendarEntry() bool {
	return n.Type == NoticeEvent || n.Type == NoticeHoliday
}
