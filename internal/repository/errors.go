package repository

import "errors"

var (
	// ErrSlotTaken время врача уже занято активной записью
	ErrSlotTaken = errors.New("slot already taken")
	// ErrNotFound запись для обновления не найдена
	ErrNotFound = errors.New("record not found")
)
