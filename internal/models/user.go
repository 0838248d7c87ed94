// Package models содержит доменные структуры сервиса авторизации и базы знаний,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей. Закрытый набор, проверяется валидатором по тегу oneof.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
	RoleGuest  = "guest"
)

// Статусы пользователей.
const (
	StatusActive   = "active"
	StatusBusy     = "busy"
	StatusInactive = "inactive"
)

// User представляет учётную запись сотрудника.
//
// RefreshToken — текущий непрозрачный refresh-токен, у учётной записи
// он не больше одного: выдача нового затирает старый. CreatedAt
// выставляется базой при создании и больше не меняется.
type User struct {
	UID                   string     `json:"uid"`
	Name                  string     `json:"name"`
	Surname               string     `json:"surname"`
	Patronymic            string     `json:"patronymic"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	TelegramLink          *string    `json:"telegram_link,omitempty"`
	Post                  string     `json:"post"`
	Team                  string     `json:"team"`
	Role                  string     `json:"role"`
	Status                string     `json:"status"`
	RefreshToken          *string    `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
}

// DummyUser используется для приёма данных о новом пользователе из JSON-запроса
// до их валидации и конвертации в User.
type DummyUser struct {
	Name         string  `json:"name" validate:"required"`
	Surname      string  `json:"surname" validate:"required"`
	Patronymic   string  `json:"patronymic"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone"`
	TelegramLink *string `json:"telegram_link,omitempty"`
	Post         string  `json:"post"`
	Team         string  `json:"team"`
	Role         string  `json:"role" validate:"required,oneof=admin editor user guest"`
	Status       string  `json:"status" validate:"omitempty,oneof=active busy inactive"`
}

// ToUser конвертирует запрос в доменную модель, подставляя статус по умолчанию.
func (d DummyUser) ToUser() User {
	status := d.Status
	if status == "" {
		status = StatusInactive
	}
	return User{
		Name:         d.Name,
		Surname:      d.Surname,
		Patronymic:   d.Patronymic,
		Email:        d.Email,
		Phone:        d.Phone,
		TelegramLink: d.TelegramLink,
		Post:         d.Post,
		Team:         d.Team,
		Role:         d.Role,
		Status:       status,
	}
}

// UserUpdate описывает частичное обновление профиля. Email неизменяем,
// nil-поле означает "не трогать".
type UserUpdate struct {
	Name         *string `json:"name,omitempty"`
	Surname      *string `json:"surname,omitempty"`
	Patronymic   *string `json:"patronymic,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	TelegramLink *string `json:"telegram_link,omitempty"`
	Post         *string `json:"post,omitempty"`
	Team         *string `json:"team,omitempty"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=admin editor user guest"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active busy inactive"`
}

// UserFilter параметры поиска пользователей: подстрочное совпадение без учёта
// регистра по профильным полям, точное — по роли и статусу.
type UserFilter struct {
	Name         string
	Surname      string
	Patronymic   string
	Email        string
	Phone        string
	TelegramLink string
	Post         string
	Team         string
	Role         string
	Status       string
	Limit        int
	Offset       int
}
