package portal

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// loggedInMarker есть на странице только у авторизованного пользователя
const loggedInMarker = "logout=yes"

var sessidPattern = regexp.MustCompile(`bitrix_sessid'\s*:\s*'([a-f0-9]+)'`)

// Session одна авторизованная сессия портала на весь процесс
type Session struct {
	client *Client
	creds  Credentials
	logger *zap.Logger

	flight        singleflight.Group
	authenticated atomic.Bool

	// mu сериализует вход на портал
	mu sync.Mutex
}

// NewSession создаёт сессию; cookies хранятся в jar клиента
func NewSession(client *Client, creds Credentials, logger *zap.Logger) *Session {
	return &Session{
		client: client,
		creds:  creds,
		logger: logger,
	}
}

// Authenticated результат последней проверки
func (s *Session) Authenticated() bool {
	return s.authenticated.Load()
}

// EnsureAuthenticated проверяет вход и при необходимости логинится.
// Одновременные вызовы разделяют одну проверку и одну попытку входа.
// Отмена ctx возвращает управление вызывающему, но не прерывает общий вход:
// его ограничивает только таймаут HTTP-клиента.
func (s *Session) EnsureAuthenticated(ctx context.Context) (bool, error) {
	results := s.flight.DoChan("auth", func() (interface{}, error) {
		return s.ensure(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-results:
		if res.Shared {
			s.logger.Debug("Shared portal authentication result", zap.Bool("ok", res.Err == nil))
		}
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	}
}

func (s *Session) ensure(ctx context.Context) (bool, error) {
	ok, err := s.probe(ctx)
	if err != nil {
		s.authenticated.Store(false)
		return false, err
	}
	if ok {
		s.authenticated.Store(true)
		return true, nil
	}

	s.logger.Info("Portal session expired, logging in")

	s.mu.Lock()
	err = s.login(ctx)
	s.mu.Unlock()
	if err != nil {
		s.authenticated.Store(false)
		s.logger.Warn("Portal login failed", zap.Error(err))
		return false, err
	}

	ok, err = s.probe(ctx)
	if err != nil {
		s.authenticated.Store(false)
		return false, err
	}
	if !ok {
		s.authenticated.Store(false)
		return false, fmt.Errorf("%w: still logged out after login", ErrAuthFailure)
	}

	s.authenticated.Store(true)
	s.logger.Info("Portal login succeeded")
	return true, nil
}

// probe запрашивает личный кабинет и ищет ссылку выхода
func (s *Session) probe(ctx context.Context) (bool, error) {
	body, err := s.client.get(ctx, personalPath)
	if err != nil {
		return false, fmt.Errorf("probe session: %w", err)
	}
	return strings.Contains(body, loggedInMarker), nil
}

func (s *Session) login(ctx context.Context) error {
	if s.creds.Login == "" || s.creds.Password == "" {
		return fmt.Errorf("%w: credentials are not configured", ErrAuthFailure)
	}

	page, err := s.client.get(ctx, loginPath)
	if err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	sessid, ok := ExtractSessid(page)
	if !ok {
		return ErrTokenNotFound
	}

	form := authFormFields(page)
	form.Set("AUTH_FORM", "Y")
	form.Set("TYPE", "AUTH")
	form.Set("backurl", personalPath)
	form.Set("USER_LOGIN", s.creds.Login)
	form.Set("USER_PASSWORD", s.creds.Password)
	form.Set("Login", "Войти")
	form.Set("sessid", sessid)

	if _, err := s.client.postForm(ctx, loginPath, form); err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}
	return nil
}

// ExtractSessid достаёт bitrix_sessid из скрипта страницы входа
func ExtractSessid(page string) (string, bool) {
	m := sessidPattern.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// authFormFields собирает скрытые поля формы входа, если она есть на странице
func authFormFields(page string) url.Values {
	form := url.Values{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return form
	}

	doc.Find("form").EachWithBreak(func(_ int, f *goquery.Selection) bool {
		if f.Find(`input[name="USER_PASSWORD"]`).Length() == 0 {
			return true
		}
		f.Find(`input[type="hidden"]`).Each(func(_ int, in *goquery.Selection) {
			name, _ := in.Attr("name")
			if name == "" {
				return
			}
			value, _ := in.Attr("value")
			form.Set(name, value)
		})
		return false
	})

	return form
}
