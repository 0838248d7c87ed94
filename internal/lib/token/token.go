// Package token генерирует непрозрачные refresh-токены.
//
// Токен — это случайная строка без внутренней структуры, сервер хранит её
// рядом с учётной записью и сравнивает на точное совпадение.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// opaqueLen длина токена в байтах до hex-кодирования (256 бит энтропии).
const opaqueLen = 32

// NewOpaque возвращает криптографически случайный refresh-токен в hex-кодировке.
func NewOpaque() (string, error) {
	const op = "token.NewOpaque"
	buf := make([]byte, opaqueLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
