package state

import "time"

// Step текущий шаг регистрации. Диалог строго линейный:
// имя → телефон → дата рождения → адрес → чек об оплате.
type Step string

const (
	StepNone      Step = "" // Нет активной регистрации
	StepFullname  Step = "awaiting_fullname"
	StepPhone     Step = "awaiting_phone"
	StepBirthdate Step = "awaiting_birthdate"
	StepAddress   Step = "awaiting_address"
	StepReceipt   Step = "awaiting_receipt"
)

// Session данные регистрации одного участника
type Session struct {
	Step      Step
	Fullname  string
	Phone     string
	Birthdate string
	Address   string
	StartedAt time.Time
	UpdatedAt time.Time
}
