package model

import "errors"

var (
	ErrModelUnavailable = errors.New("model backend unavailable")
	ErrInferenceTimeout = errors.New("model inference timeout")
	ErrInvalidResponse  = errors.New("model backend returned invalid response")
)
