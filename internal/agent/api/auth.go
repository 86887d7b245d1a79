// В этом файле описаны методы клиента для работы с формами
// аутентификации: регистрация, вход и выход.
package api

import (
	"net/url"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// pathSignIn — куда сервер молча возвращает при любом отказе в auth-формах.
const pathSignIn = "/signin"

// SignUp регистрирует пользователя и возвращает значение cookie новой сессии.
//
// Сервер не сообщает причину отказа: и невалидные данные, и занятый email
// приводят к редиректу на /signin. В этом случае возвращается
// serr.ErrInvalidInput.
func (c *Client) SignUp(name, email, password string) (string, error) {
	res, err := c.PostForm("/signup", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	}, "")
	if err != nil {
		return "", err
	}
	if res.Location == pathSignIn || res.Session == "" {
		return "", serr.ErrInvalidInput
	}
	return res.Session, nil
}

// SignIn выполняет вход и возвращает значение cookie сессии.
//
// Отказ сервера (редирект на /signin без cookie) превращается
// в serr.ErrInvalidCredentials.
func (c *Client) SignIn(email, password string) (string, error) {
	res, err := c.PostForm("/signin", url.Values{
		"email":    {email},
		"password": {password},
	}, "")
	if err != nil {
		return "", err
	}
	if res.Location == pathSignIn || res.Session == "" {
		return "", serr.ErrInvalidCredentials
	}
	return res.Session, nil
}

// SignOut завершает сессию на сервере. Повторный выход не ошибка.
func (c *Client) SignOut(sid string) error {
	_, err := c.PostForm("/logout", url.Values{}, sid)
	return err
}
