package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned by the Or404 lookups when the record is absent.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%d' was not found.", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
