package portal

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// Portal запросы к порталу университета поверх общей сессии
type Portal struct {
	client  *Client
	session *Session
	logger  *zap.Logger
}

func New(client *Client, session *Session, logger *zap.Logger) *Portal {
	return &Portal{
		client:  client,
		session: session,
		logger:  logger,
	}
}

// EnsureAuthenticated см. Session.EnsureAuthenticated
func (p *Portal) EnsureAuthenticated(ctx context.Context) (bool, error) {
	return p.session.EnsureAuthenticated(ctx)
}

// FetchScheduleHTML возвращает страницу расписания группы как есть.
// Повторов нет: следующий вызов начнёт проверку сессии заново.
func (p *Portal) FetchScheduleHTML(ctx context.Context, groupID string) (string, error) {
	ok, err := p.session.EnsureAuthenticated(ctx)
	if err != nil {
		return "", fmt.Errorf("ensure authenticated: %w", err)
	}
	if !ok {
		return "", ErrAuthFailure
	}

	body, err := p.client.get(ctx, schedulePath+url.QueryEscape(groupID))
	if err != nil {
		return "", fmt.Errorf("fetch schedule: %w", err)
	}

	p.logger.Debug("Schedule page fetched",
		zap.String("group_id", groupID),
		zap.Int("bytes", len(body)))

	return body, nil
}
