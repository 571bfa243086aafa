package models

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrJobClosed         = errors.New("job is delivered or cancelled, parts and labour are frozen")
	ErrBadTransition     = errors.New("invalid status transition")
	ErrClientReferenced  = errors.New("client has jobs, sales or payments and cannot be deleted")
)
