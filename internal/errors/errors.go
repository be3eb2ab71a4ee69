// errors стандартизирует ответы об ошибках HTTP-слоя фрейма.
// На вход принимает ошибку доменного слоя, на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Большинство сбоев (каталог недоступен, битый state) до HTTP-слоя не доходят:
// они схлопываются в «профиль отсутствует». Сюда попадают только ошибки
// входа (битый JSON действия, отсутствующий fid) и таймауты.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrInvalidArgument — ошибка входа клиента. «Не найдено» сюда не относится:
// отсутствие профиля — штатный ответ фрейма, а не ошибка.
var ErrInvalidArgument = stderrors.New("invalid argument")

// Error — ошибка с явным HTTP-статусом и человекочитаемым сообщением.
// Message уходит клиенту как есть.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidArgument — 400 с заданным сообщением.
func InvalidArgument(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "invalid_argument", Message: msg, Err: ErrInvalidArgument}
}

// APIError — единый формат ответа.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - *Error - статус/код/сообщение из неё;
//   - ErrInvalidArgument -> 400;
//   - context.DeadlineExceeded -> 504, context.Canceled -> 499;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	httpStatus, code, msg := classify(err)

	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func classify(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal", "internal error"
	}

	var e *Error
	if stderrors.As(err, &e) && e.Status != 0 {
		code := e.Code
		if code == "" {
			code = "error"
		}

		return e.Status, code, e.Message
	}

	switch {
	case stderrors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
