package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoPendingEntry нет ожидающего анализа (повторное нажатие кнопки, рестарт процесса)
	ErrNoPendingEntry = errors.New("no pending analysis")
	// ErrNoSession нет живой сессии диалога на нужном шаге
	ErrNoSession = errors.New("no intake session at this step")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// CollaboratorError сбой внешнего сервиса (распознавание, скачивание фото).
// Op идёт только в логи, пользователю показывается Err
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// CollaboratorCause исходная ошибка внешнего сервиса без наших префиксов
func CollaboratorCause(err error) error {
	var collaboratorErr *CollaboratorError
	if errors.As(err, &collaboratorErr) {
		return collaboratorErr.Err
	}
	return err
}

// ValidationError ввод на шаге диалога вне допустимого диапазона или не число
type ValidationError struct {
	Step  IntakeStep
	Input string
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected number in [%s, %s]",
		e.Step, e.Input,
		strconv.FormatFloat(e.Min, 'f', -1, 64),
		strconv.FormatFloat(e.Max, 'f', -1, 64))
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// FailureKind класс ошибки внешнего сервиса распознавания
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureThrottled
	FailureUnavailable
)

func (k FailureKind) String() string {
	switch k {
	case FailureThrottled:
		return "throttled"
	case FailureUnavailable:
		return "unavailable"
	default:
		return "generic"
	}
}
