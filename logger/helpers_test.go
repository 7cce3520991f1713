package logger

import "errors"

var errTest = errors.New("test error")

func joinErrors(errs ...error) error {
	return errors.Join(errs...)
}
