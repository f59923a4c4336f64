package usecase

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindInvalidQuantity    ErrorKind = "invalid_quantity"
	KindInsufficientStock  ErrorKind = "insufficient_stock"
	KindEmptyCart          ErrorKind = "empty_cart"
	KindInvalidStatus      ErrorKind = "invalid_status"
	KindPersistenceFailure ErrorKind = "persistence_failure"
	KindValidation         ErrorKind = "validation"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindConflict           ErrorKind = "conflict"
)

// usecaseが返すエラー。HTTPステータスへの変換はhandler側
type Error struct {
	Kind    ErrorKind
	Message string
	// InsufficientStock/NotFoundで対象の商品が分かるとき
	ProductID int64
	Err       error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// errors.Is(err, ErrNotFound) のようにKindで比較する
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidQuantity    = &Error{Kind: KindInvalidQuantity}
	ErrInsufficientStock  = &Error{Kind: KindInsufficientStock}
	ErrEmptyCart          = &Error{Kind: KindEmptyCart}
	ErrInvalidStatus      = &Error{Kind: KindInvalidStatus}
	ErrPersistenceFailure = &Error{Kind: KindPersistenceFailure}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrConflict           = &Error{Kind: KindConflict}
)

func NewError(kind ErrorKind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func notFound(what string) error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func productNotFound(productID int64) error {
	return &Error{
		Kind:      KindNotFound,
		Message:   fmt.Sprintf("product %d not found", productID),
		ProductID: productID,
	}
}

func insufficientStock(productID int64, name string) error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   "insufficient stock for " + name,
		ProductID: productID,
	}
}

func invalidQuantity() error {
	return &Error{Kind: KindInvalidQuantity, Message: "quantity must be positive"}
}

func validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// DBエラーを包む
func persistence(err error) error {
	return &Error{Kind: KindPersistenceFailure, Message: "db error", Err: err}
}

// txの中で返したusecaseエラーはそのまま、それ以外はDBエラー扱い
func wrapTxErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}
	return persistence(err)
}
