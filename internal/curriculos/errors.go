package curriculos

import "errors"

var (
	ErrNotFound   = errors.New("curriculo not found")
	ErrValidation = errors.New("invalid curriculo")
	ErrTooLarge   = errors.New("curriculo exceeds the size limit")
)
