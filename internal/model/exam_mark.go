package model

// ExamType тип экзамена
type ExamType string

const (
	ExamMidTerm  ExamType = "Mid-Term"
	ExamFinal    ExamType = "Final"
	ExamUnitTest ExamType = "Unit Test"
)

// ExamMark оценка за экзамен по предмету
type ExamMark struct {
	ID        string   `json:"id,omitempty"`
	StudentID string   `json:"studentId,omitempty"`
	Subject   string   `json:"subject"`
	Marks     int      `json:"marks"`
	Total     int      `json:"total"`
	ExamType  ExamType `json:"examType"`
}

// SetID устанавливает идентификатор документа
func (m *ExamMark) SetID(id string) { m.ID = id }

// Percent процент от максимального балла
func (m ExamMark) Percent() float64 {
	if m.Total <= 0 {
		return 0
	}
	return float64(m.Marks) * 100 / float64(m.Total)
}

// Totals суммирует баллы по списку оценок
func Totals(marks []ExamMark) (scored, total int) {
	for _, m := range marks {
		scored += m.Marks
		total += m.Total
	}
	return scored, total
}

// Grade оценка по проценту: от 90% A1, от 80% A2, иначе B1
func (m ExamMark) Grade() string {
	switch p := m.Percent(); {
	case p >= 90:
		return "A1"
	case p >= 80:
		return "A2"
	default:
		return "B1"
	}
}
