// Package apperr: servis katmanının hata taksonomisi. Servisler transport'tan
// bağımsız olarak tür + kimlik döndürür, HTTP eşlemesi main'deki merkezi
// error handler'da yapılır.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInvalidTransition Kind = "invalid_transition"
	KindNotModifiable     Kind = "not_modifiable"
	KindConflict          Kind = "conflict"
	KindValidation        Kind = "validation"
)

type Error struct {
	Kind    Kind
	Entity  string // etkilenen varlık (stok, sipariş, ...)
	ID      uint   // varsa etkilenen kaydın id'si
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(entity string, id uint) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s bulunamadı (id=%d)", entity, id),
	}
}

func InsufficientStock(id uint, name string) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Entity:  "stok",
		ID:      id,
		Message: fmt.Sprintf("yetersiz stok: %s (id=%d)", name, id),
	}
}

func InvalidTransition(orderID uint, from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Entity:  "sipariş",
		ID:      orderID,
		Message: fmt.Sprintf("geçersiz durum geçişi: %s -> %s", from, to),
	}
}

func NotModifiable(orderID uint, status string) *Error {
	return &Error{
		Kind:    KindNotModifiable,
		Entity:  "sipariş",
		ID:      orderID,
		Message: fmt.Sprintf("sipariş bu durumda değiştirilemez: %s", status),
	}
}

func Conflict(entity string, id uint, msg string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Is: err zincirinde verilen türde bir taksonomi hatası var mı?
func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
