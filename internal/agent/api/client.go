// Package api содержит HTTP-клиент для взаимодействия с сервером BookCorner.
//
// Сервер отдаёт HTML-страницы и принимает HTML-формы, поэтому клиент работает
// в двух режимах:
//   - JSON (GET /api/articles, GET /api/books) для чтения списков;
//   - формы (application/x-www-form-urlencoded) для регистрации, входа,
//     отправки статей и админских действий над книгами.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - Редиректы НЕ выполняются: результат формы определяется по статусу
//     и заголовку Location (например 303 на /signin означает отказ).
//   - Сессия передаётся cookie, имя которой по умолчанию DefaultCookieName.
//   - При ошибочных ответах (не 2xx/3xx) возвращается ошибка с текстом тела
//     ответа (если тело пустое, используется res.Status).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// DefaultCookieName — имя cookie сессии сервера по умолчанию.
const DefaultCookieName = "bookcorner_sid"

// maxErrorBody ограничивает чтение тела ошибки (страницы ошибок бывают большими).
const maxErrorBody = 4 << 10

// Client реализует HTTP-клиент для общения с сервером BookCorner.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - cookieName: имя cookie сессии.
//   - http: настроенный http.Client (таймаут, без следования редиректам).
type Client struct {
	baseURL    string
	cookieName string
	http       *http.Client
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:8080").
//
// Поведение:
//   - обрезает завершающий "/" у baseURL;
//   - создаёт http.Client с таймаутом 10 секунд;
//   - отключает автоматическое следование редиректам.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookieName: DefaultCookieName,
		http: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// WithCookieName задаёт имя cookie сессии, если сервер настроен иначе.
func (c *Client) WithCookieName(name string) *Client {
	if name != "" {
		c.cookieName = name
	}
	return c
}

// APIError — неуспешный ответ сервера.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server: %d %s", e.Status, e.Message)
}

// Unwrap сводит статус к общей доменной ошибке, чтобы вызывающий мог
// проверять errors.Is(err, serr.ErrInvalidInput) и т.п.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusBadRequest:
		return serr.ErrInvalidInput
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return serr.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return serr.ErrNotFound
	case e.Status >= 500:
		return serr.ErrInternal
	}
	return nil
}

// readAPIErrorBody читает тело ответа сервера и возвращает *APIError.
//
// Если тело JSON вида {"error": "..."}, используется поле error,
// иначе обрезанный текст тела или res.Status.
func readAPIErrorBody(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" || strings.HasPrefix(msg, "<") {
		msg = http.StatusText(res.StatusCode)
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Пустое тело (io.EOF) ошибкой не считается.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// GetJSON выполняет GET-запрос к серверу и декодирует JSON-ответ в resp.
//
// Параметры:
//   - path: путь относительно baseURL (например: "/api/articles").
//   - resp: указатель на объект для декодирования (nil: тело не читается).
//   - sid: значение cookie сессии (пустая строка: без cookie).
func (c *Client) GetJSON(path string, resp any, sid string) error {
	r, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	c.attach(r, sid)

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIErrorBody(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return nil
	}
	return decodeJSONOrOK(res.Body, resp)
}

// FormResult — итог отправки формы.
//
// Location — путь редиректа (пустой, если сервер ответил не 3xx).
// Session — новое значение cookie сессии, если сервер её выставил;
// Cleared — сервер удалил cookie.
type FormResult struct {
	Status   int
	Location string
	Session  string
	Cleared  bool
}

// PostForm отправляет urlencoded форму на path.
//
// Ответы 2xx и 3xx считаются доставленными и возвращаются как FormResult,
// остальные превращаются в *APIError.
func (c *Client) PostForm(path string, form url.Values, sid string) (FormResult, error) {
	r, err := http.NewRequest(http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return FormResult{}, err
	}
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.attach(r, sid)

	res, err := c.http.Do(r)
	if err != nil {
		return FormResult{}, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return FormResult{}, readAPIErrorBody(res)
	}
	_, _ = io.Copy(io.Discard, res.Body)

	out := FormResult{Status: res.StatusCode}
	if loc, err := res.Location(); err == nil {
		out.Location = loc.Path
	}
	for _, ck := range res.Cookies() {
		if ck.Name != c.cookieName {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			out.Cleared = true
			continue
		}
		out.Session = ck.Value
	}
	return out, nil
}

func (c *Client) attach(r *http.Request, sid string) {
	if sid != "" {
		r.AddCookie(&http.Cookie{Name: c.cookieName, Value: sid})
	}
}
