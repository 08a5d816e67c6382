package auth

import (
	"context"
)

type contextKey string

const (
	// userIDKey é a chave usada para armazenar o ID do usuário no contexto
	userIDKey contextKey = "user_id"
)

// SetUserIDContext define o ID do usuário interno no contexto da requisição
func SetUserIDContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext obtém o ID do usuário interno do contexto
func GetUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetUserID obtém o ID do usuário de um contexto do Gin
func GetUserID(c interface{}) string {
	if gc, ok := c.(interface{ GetString(string) string }); ok {
		return gc.GetString("user_id")
	}

	if gc, ok := c.(interface {
		Get(string) (interface{}, bool)
	}); ok {
		if val, exists := gc.Get("user_id"); exists {
			if userID, ok := val.(string); ok {
				return userID
			}
		}
	}

	return ""
}
