package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Book struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title" validate:"required"`
	Author          string          `json:"author" validate:"required"`
	Publisher       string          `json:"publisher"`
	ISBN            string          `json:"isbn" validate:"required"`
	Price           decimal.Decimal `json:"price"`
	Genre           string          `json:"genre,omitempty"`
	PublicationYear int             `json:"publication_year,omitempty"`
	Description     string          `json:"description,omitempty"`
	Inventory       int             `json:"inventory"`
	PictureURL      string          `json:"picture_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateBookRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Author          string          `json:"author" validate:"required,max=255"`
	Publisher       string          `json:"publisher" validate:"required,max=255"`
	ISBN            string          `json:"isbn" validate:"required,min=10,max=17"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Genre           string          `json:"genre" validate:"omitempty,max=100"`
	PublicationYear int             `json:"publication_year" validate:"omitempty,gte=1000,lte=2100"`
	Description     string          `json:"description" validate:"omitempty,max=5000"`
	Inventory       int             `json:"inventory" validate:"gte=0"`
	PictureURL      string          `json:"picture_url" validate:"omitempty,url"`
}

type UpdateBookRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Author          *string          `json:"author,omitempty" validate:"omitempty,max=255"`
	Publisher       *string          `json:"publisher,omitempty" validate:"omitempty,max=255"`
	ISBN            *string          `json:"isbn,omitempty" validate:"omitempty,min=10,max=17"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Genre           *string          `json:"genre,omitempty" validate:"omitempty,max=100"`
	PublicationYear *int             `json:"publication_year,omitempty" validate:"omitempty,gte=1000,lte=2100"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Inventory       *int             `json:"inventory,omitempty" validate:"omitempty,gte=0"`
	PictureURL      *string          `json:"picture_url,omitempty" validate:"omitempty,url"`
}

type SearchBooksQuery struct {
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Title     string `json:"title,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`
}
