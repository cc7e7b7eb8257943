package printout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saborify/models"
)

func sample() models.Recipe {
	minutes, servings := 30, 4
	rating := 4.5
	return models.Recipe{
		ID:          "7",
		Name:        "Tortilla de patatas",
		Description: "Clásica, jugosa y con cebolla.",
		Cuisine:     "española",
		MealTypes:   models.MealTypes{"cena"},
		Difficulty:  "fácil",
		CookingTime: &minutes,
		Servings:    &servings,
		Rating:      &rating,
		Ingredients: []models.RecipeIngredient{{Name: "huevo"}, {Name: "patata"}},
		Steps:       []models.Step{{Text: "Pelar y freír las patatas"}, {Text: "Batir los huevos"}},
	}
}

func TestRecipeLink(t *testing.T) {
	p := New("https://saborify.example/")
	assert.Equal(t, "https://saborify.example/recipe-detail?id=7", p.RecipeLink(sample()))

	ai := sample()
	ai.AIGenerated = true
	assert.Empty(t, p.RecipeLink(ai))

	assert.Empty(t, New("").RecipeLink(sample()))
}

func TestRecipeWritesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("https://saborify.example").Recipe(&buf, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRecipesWritesOnePagePerRecipe(t *testing.T) {
	ai := sample()
	ai.ID = ""
	ai.AIGenerated = true

	var buf bytes.Buffer
	require.NoError(t, New("https://saborify.example").Recipes(&buf, "Favoritas", []models.Recipe{sample(), ai}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRecipesEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("").Recipes(&buf, "Favoritas", nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
