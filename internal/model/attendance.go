package model

import "time"

// AttendanceRegister отметка посещаемости класса за день.
// ID строится из класса и даты, повторная отправка перезаписывает отметку.
type AttendanceRegister struct {
	ID        string          `json:"id"`
	Class     string          `json:"class"`
	Date      string          `json:"date"`
	TakenBy   string          `json:"takenBy"`
	Present   map[string]bool `json:"present"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SetID устанавливает идентификатор документа
func (a *AttendanceRegister) SetID(id string) { a.ID = id }

// AttendanceRegisterID идентификатор отметки класса за дату
func AttendanceRegisterID(class string, date time.Time) string {
	return class + ":" + date.Format(time.DateOnly)
}

// Counts количество присутствующих и отсутствующих
func (a AttendanceRegister) Counts() (present, absent int) {
	for _, p := range a.Present {
		if p {
			present++
		} else {
			absent++
		}
	}
	return present, absent
}
