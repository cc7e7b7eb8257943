package models

import (
	"bytes"
	"encoding/json"
)

type RecipeIngredient struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"nombreIngrediente"`
}

// UnmarshalJSON accepts the object form and the bare-name form some
// endpoints return.
func (ri *RecipeIngredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*ri = RecipeIngredient{Name: name}
		return nil
	}
	type plain RecipeIngredient
	var p struct {
		plain
		Nombre string `json:"nombre"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*ri = RecipeIngredient(p.plain)
	if ri.Name == "" {
		ri.Name = p.Nombre
	}
	return nil
}

type Step struct {
	Text string `json:"nombrePaso"`
}

func (s *Step) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Text)
	}
	var p struct {
		Text string `json:"nombrePaso"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	s.Text = p.Text
	return nil
}

// MealTypes is sent either as a single string or as a list.
type MealTypes []string

func (m *MealTypes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*m = nil
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = nil
			return nil
		}
		*m = MealTypes{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*m = list
	return nil
}

type Recipe struct {
	ID              ID                 `json:"id,omitempty"`
	Name            string             `json:"nombre"`
	Description     string             `json:"descripcion,omitempty"`
	Cuisine         string             `json:"tipoCocina,omitempty"`
	MealTypes       MealTypes          `json:"tipoComida,omitempty"`
	Difficulty      string             `json:"dificultad,omitempty"`
	CookingTime     *int               `json:"tiempoCocinado,omitempty"`
	Servings        *int               `json:"porciones,omitempty"`
	CaloriesPerServ *int               `json:"caloriasPorPorcion,omitempty"`
	Image           string             `json:"imagen,omitempty"`
	ImageURL        string             `json:"imagen_url,omitempty"`
	Rating          *float64           `json:"valoracion,omitempty"`
	Ingredients     []RecipeIngredient `json:"ingredientes"`
	Steps           []Step             `json:"pasos,omitempty"`
	UserID          ID                 `json:"usuario_id,omitempty"`
	AIGenerated     bool               `json:"IA,omitempty"`
}

func (r Recipe) IsAIGenerated() bool { return r.AIGenerated }

// OwnedBy compares owner ids as strings, the API mixes numeric and string ids.
func (r Recipe) OwnedBy(userID ID) bool {
	return userID != "" && r.UserID == userID
}

// Picture returns whichever image field the backend filled in.
func (r Recipe) Picture() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return r.Image
}

type Difficulty struct {
	Name string `json:"dificultad"`
}

type MealType struct {
	ID   ID     `json:"id"`
	Name string `json:"nombre"`
}

type UploadResult struct {
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
}
