// kmapin-logistics/config/jwt.go
package config

import (
	"log/slog"
	"os"
)

// JwtKey - ключ для подписи JWT токенов.
var JwtKey = loadJwtKey()

func loadJwtKey() []byte {
	key := os.Getenv("JWT_SECRET")
	if key == "" {
		slog.Warn("Переменная окружения JWT_SECRET не установлена, используется ключ по умолчанию (только для разработки!).")
		key = "kmapin-dev-secret"
	}
	return []byte(key)
}
