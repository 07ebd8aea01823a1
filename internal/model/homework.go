package model

// Homework домашнее задание. Class свободный текстовый ключ без ссылочной целостности.
type Homework struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Class       string `json:"class"`
	AssignedBy  string `json:"assignedBy"`
}

// SetID устанавливает идентификатор документа
func (h *Homework) SetID(id string) { h.ID = id }
