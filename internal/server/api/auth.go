// HTTP-хендлеры регистрации, входа и выхода
package api

import (
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// SignInPage рисует общую страницу входа и регистрации.
func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageSignIn, "Sign in", nil)
}

// SignUpPage — отдельной страницы регистрации нет, форма живёт на /signin.
func (h *Handler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/signin", http.StatusFound)
}

// SignUp обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 303 на /: аккаунт создан, cookie сессии выставлена;
//   - 303 на /signin: пустые поля, битая форма или email уже занят;
//   - 500: прочие ошибки.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeSignUp(w, r)
	if err != nil {
		redirect(w, r, "/signin")
		return
	}

	sess, err := h.Svc.Auth.SignUp(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrAlreadyExists):
			redirect(w, r, "/signin")
		default:
			h.fail(w, r, http.StatusInternalServerError, "signup", err)
		}
		return
	}

	if err := h.Sessions.SetCookie(w, sess); err != nil {
		h.fail(w, r, http.StatusInternalServerError, "signup cookie", err)
		return
	}
	redirect(w, r, "/")
}

// SignIn обрабатывает вход пользователя.
//
// Ответы:
//   - 303 на /: вход выполнен;
//   - 303 на /signin: любая ошибка аутентификации, без подробностей;
//   - 500: хранилище недоступно.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeSignIn(w, r)
	if err != nil {
		redirect(w, r, "/signin")
		return
	}

	sess, err := h.Svc.Auth.SignIn(r.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrInvalidCredentials):
			redirect(w, r, "/signin")
		default:
			h.fail(w, r, http.StatusInternalServerError, "signin", err)
		}
		return
	}

	if err := h.Sessions.SetCookie(w, sess); err != nil {
		h.fail(w, r, http.StatusInternalServerError, "signin cookie", err)
		return
	}
	redirect(w, r, "/")
}

// Logout уничтожает серверную сессию, удаляет cookie и отправляет на /.
// Запрос без сессии тоже считается успешным.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.Sessions.Token(r)
	h.Sessions.ClearCookie(w)

	if err := h.Svc.Auth.SignOut(r.Context(), token); err != nil {
		h.fail(w, r, http.StatusInternalServerError, "logout", err)
		return
	}
	redirect(w, r, "/")
}
