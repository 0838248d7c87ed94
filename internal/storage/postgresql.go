// Package storage реализует хранилище данных на основе PostgreSQL
// для учётных записей пользователей и статей базы знаний. Предоставляет
// методы создания, чтения, обновления, удаления и поиска записей,
// а также операции с refresh-токенами.
package storage

import (
	"context"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// Ошибки уровня хранилища, на которые опираются сервисы и обработчики.
var (
	// ErrNotFound запись с таким идентификатором отсутствует
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken пользователь с таким email уже существует
	ErrEmailTaken = errors.New("email already taken")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и статьями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}
