package portal

import "errors"

var (
	// ErrTokenNotFound на странице входа нет bitrix_sessid
	ErrTokenNotFound = errors.New("login token not found")
	// ErrAuthFailure вход не удался или проверка после входа показывает гостя
	ErrAuthFailure = errors.New("portal authentication failed")
	// ErrFetchFailure ошибка сети или неуспешный ответ портала
	ErrFetchFailure = errors.New("portal request failed")
)
