package warehouse

import (
	"errors"
	"fmt"
)

var (
	// ErrConversion is matched by every ConversionError.
	ErrConversion = errors.New("stockroom: conversion failed")

	// ErrInvalidInput is returned when a service receives a nil or unusable view.
	ErrInvalidInput = errors.New("stockroom: invalid input")
)

// ConversionError reports a product view that cannot become a record
// because one of its article references did not convert.
type ConversionError struct {
	ProductID int64

	// Index is the position of the failing article, or -1 for the product itself.
	Index int

	Reason string
}

func (e *ConversionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: product %d: %s", ErrConversion, e.ProductID, e.Reason)
	}
	return fmt.Sprintf("%s: product %d: article [%d]: %s", ErrConversion, e.ProductID, e.Index, e.Reason)
}

func (e *ConversionError) Unwrap() error { return ErrConversion }
