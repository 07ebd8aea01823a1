package assistant

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

const preamble = "You are an intelligent assistant integrated into 'SAMPARK KVK', " +
	"a school management app for Kendriya Vidyalaya."

const closing = "Keep responses professional, concise, and formatted for easy reading."

var roleGuidance = map[model.Role]string{
	model.RoleAdmin:   "Help draft formal circulars, analyze attendance trends, or suggest event schedules.",
	model.RoleTeacher: "Help create lesson plans, generate quiz questions, or draft comments for report cards.",
	model.RoleParent:  "Explain homework topics simply, suggest study schedules, or summarize notices.",
}

// SystemInstruction инструкция модели для роли пользователя.
// Неизвестная роль получает инструкцию учителя.
func SystemInstruction(role model.Role) string {
	role = model.CoerceRole(string(role))

	var sb strings.Builder
	sb.WriteString(preamble)
	fmt.Fprintf(&sb, "\nYour current user role context is: %s.\n\n", role)
	fmt.Fprintf(&sb, "The user is %s. %s\n\n", article(role.Title()), roleGuidance[role])
	sb.WriteString(closing)
	return sb.String()
}

// Intro подсказка на экране помощника
func Intro(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "Draft circulars, emails, or get summaries of school reports."
	case model.RoleParent:
		return "Ask for homework explanations or study tips for your child."
	default:
		return "Create lesson plans, quiz questions, or report card comments."
	}
}

// Example пример запроса для роли
func Example(role model.Role) string {
	if role == model.RoleTeacher {
		return "E.g., Create a 5-question quiz on Photosynthesis for Class 7..."
	}
	return "E.g., Draft a notice for parents regarding the new winter uniform policy..."
}

func article(title string) string {
	if strings.ContainsRune("AEIOU", rune(title[0])) {
		return "an " + title
	}
	return "a " + title
}
