package model

// Student ученик. Слой только читает учеников, владелец записей хранилище.
type Student struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RollNo      string `json:"rollNo"`
	Class       string `json:"class"`
	Attendance  int    `json:"attendance"` // процент посещаемости 0-100
	ParentsName string `json:"parentsName"`
}

// SetID устанавливает идентификатор документа
func (s *Student) SetID(id string) { s.ID = id }

// AttendancePercent возвращает посещаемость, ограниченную диапазоном 0-100
func (s Student) AttendancePercent() int {
	switch {
	case s.Attendance < 0:
		return 0
	case s.Attendance > 100:
		return 100
	}
	return s.Attendance
}

// ClassOptions классы, доступные в выпадающем списке учителя
var ClassOptions = []string{"VI-A", "VI-B", "VII-A", "VII-B", "VIII-A", "X-A", "X-B", "XII-Sci"}
