package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// RequestID метит каждое обновление идентификатором запроса для логов
func RequestID(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			id := uuid.NewString()
			ctx = context.WithValue(ctx, requestIDKey{}, id)

			started := time.Now()
			next(ctx, b, update)

			logger.Debug("Update handled",
				zap.String("request_id", id),
				zap.Int64("update_id", update.ID),
				zap.Duration("took", time.Since(started)),
			)
		}
	}
}

// RequestIDFrom идентификатор запроса из контекста или пустая строка
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// log логгер с идентификатором текущего запроса
func (h *Handlers) log(ctx context.Context) *zap.Logger {
	if id := RequestIDFrom(ctx); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}
