// Package qrcode renders order confirmation codes.
package qrcode

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	maxSize        = 1024
	confirmationID = "eatery:order:"
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qr content is empty")

// Encoder renders PNG QR codes.
type Encoder struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewEncoder creates an Encoder. level is one of L, M, Q or H; anything else
// means M.
func NewEncoder(size int, level string) *Encoder {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	var recovery qrcode.RecoveryLevel
	switch level {
	case "L":
		recovery = qrcode.Low
	case "Q":
		recovery = qrcode.High
	case "H":
		recovery = qrcode.Highest
	default:
		recovery = qrcode.Medium
	}
	return &Encoder{size: size, level: recovery}
}

// OrderConfirmation renders the confirmation code for an order id.
func (e *Encoder) OrderConfirmation(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, ErrEmptyContent
	}
	return e.PNG(confirmationID + orderID)
}

// PNG encodes content as a PNG image.
func (e *Encoder) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	code, err := qrcode.New(content, e.level)
	if err != nil {
		return nil, fmt.Errorf("create qr code: %w", err)
	}
	png, err := code.PNG(e.size)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return png, nil
}
