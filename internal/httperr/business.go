package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindPolicy
	KindUnauthorized
	KindTooManyRequests
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func NotFoundErr(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func ConflictErr(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func Policy(code, message string) error {
	return ErrBusiness(KindPolicy, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// AsBusiness unwraps err into a BusinessError when it carries one.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
