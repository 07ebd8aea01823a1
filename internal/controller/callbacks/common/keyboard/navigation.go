package keyboard

import (
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

// Callback data общих кнопок
const (
	DataMenu        = "menu"
	DataLogout      = "logout"
	DataLogin       = "auth:login"
	DataSignUp      = "auth:signup"
	DataSignUpRole  = "signup_role:"
	DataNavigate    = "nav:"
	DataSeedConfirm = "seed_confirm"
	DataNoop        = "noop"
)

// NavButton кнопка пункта меню; текущий экран отмечен
func NavButton(item navigation.Item, current navigation.ViewState) models.InlineKeyboardButton {
	label := item.Emoji + " " + item.Label
	if item.View == current {
		label = "• " + label
	}
	return Button(label, DataNavigate+string(item.View))
}

// AddNavigation добавляет меню роли по два пункта в ряд и кнопку выхода
func (b *Builder) AddNavigation(items []navigation.Item, current navigation.ViewState) *Builder {
	buttons := make([]models.InlineKeyboardButton, 0, len(items))
	for _, item := range items {
		buttons = append(buttons, NavButton(item, current))
	}
	b.Columns(2, buttons...)
	return b.Row(Button("🚪 Sign Out", DataLogout))
}

// BackToMenuButton создаёт кнопку "К панели"
func BackToMenuButton() models.InlineKeyboardButton {
	return Button("⬅️ Back to dashboard", DataMenu)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// ConfirmCancel клавиатура подтверждения
func ConfirmCancel(confirmCallback, cancelCallback string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(ConfirmButton(confirmCallback), CancelButton(cancelCallback)).
		Build()
}

// Welcome клавиатура для чата без входа
func Welcome() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("🔑 Sign In", DataLogin), Button("📝 Create Account", DataSignUp)).
		Build()
}

// SignUpRoles выбор роли при регистрации
func SignUpRoles() *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, r := range model.Roles {
		b.Row(Button(r.Title(), DataSignUpRole+string(r)))
	}
	return b.Row(CancelButton(DataMenu)).Build()
}
