package models

import (
	"fmt"
	"strings"
)

type Review struct {
	ID       ID     `json:"id"`
	RecipeID ID     `json:"receta_id,omitempty"`
	UserID   ID     `json:"usuario_id,omitempty"`
	Author   string `json:"usuario,omitempty"`
	Rating   int    `json:"puntuacion"`
	Comment  string `json:"comentario"`
}

// NewReview is the body of POST /resenia.
type NewReview struct {
	RecipeID int64  `json:"receta_id"`
	UserID   int64  `json:"usuario_id"`
	Rating   int    `json:"puntuacion"`
	Comment  string `json:"comentario"`
}

func (nr NewReview) Validate() error {
	if nr.Rating < 1 || nr.Rating > 5 {
		return fmt.Errorf("%w: please add a rating between 1 and 5", ErrValidation)
	}
	if strings.TrimSpace(nr.Comment) == "" {
		return fmt.Errorf("%w: please add a comment", ErrValidation)
	}
	return nil
}
