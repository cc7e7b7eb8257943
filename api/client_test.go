package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saborify/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

func TestErrorMessageFromBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"not found"}`)
	})

	_, err := c.GetRecipe(context.Background(), "999")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListIngredients(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error 500: Internal Server Error", err.Error())
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base).ListRecipes(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "Error al obtener las recetas")
}

func TestBearerOnlyOnAuthenticatedCalls(t *testing.T) {
	var seen = map[string]string{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen[r.Method+" "+r.URL.Path] = r.Header.Get("Authorization")
		io.WriteString(w, `{"data":[]}`)
	}, WithTokenSource(StaticToken("abc123")))

	ctx := context.Background()
	_, err := c.ListRecipes(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, c.DeleteRecipe(ctx, "4"))

	assert.Equal(t, "", seen["GET /recetas"])
	assert.Equal(t, "Bearer abc123", seen["DELETE /recetas/4"])
}

func TestEmptyTokenSendsNoHeader(t *testing.T) {
	var header string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
	}, WithTokenSource(StaticToken("")))

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, header)
}

func TestWithTokenCopies(t *testing.T) {
	var header string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
	})

	bound := c.WithToken(StaticToken("t1"))
	require.NoError(t, bound.Logout(context.Background()))
	assert.Equal(t, "Bearer t1", header)

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, header)
}

func TestListRecipesDropsEmptyFilters(t *testing.T) {
	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		io.WriteString(w, `[{"id":1,"nombre":"Tortilla","ingredientes":[]}]`)
	})

	list, err := c.ListRecipes(context.Background(), url.Values{
		"tipoCocina": {"española"},
		"dificultad": {""},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ID("1"), list[0].ID)
	assert.Equal(t, "española", query.Get("tipoCocina"))
	_, present := query["dificultad"]
	assert.False(t, present)
}

func TestGetRecipeTakesFirstElement(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recetas/7", r.URL.Path)
		io.WriteString(w, `{"data":[{"id":7,"nombre":"Gazpacho","valoracion":4.5,"ingredientes":["tomate",{"nombre":"pepino"}],"pasos":[{"nombrePaso":"Triturar"}]}]}`)
	})

	r, err := c.GetRecipe(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Gazpacho", r.Name)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4.5, *r.Rating)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "tomate", r.Ingredients[0].Name)
	assert.Equal(t, "pepino", r.Ingredients[1].Name)
	assert.Equal(t, "Triturar", r.Steps[0].Text)
}

func TestGetRecipeEmptyEnvelopeIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[]}`)
	})

	_, err := c.GetRecipe(context.Background(), "7")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestCreateReviewBody(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/resenia", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `{"data":{"id":31}}`)
	}, WithTokenSource(StaticToken("tok")))

	review, err := c.CreateReview(context.Background(), models.NewReview{
		RecipeID: 7, UserID: 3, Rating: 4, Comment: "Great dish",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"receta_id":  float64(7),
		"usuario_id": float64(3),
		"puntuacion": float64(4),
		"comentario": "Great dish",
	}, body)
	assert.Equal(t, models.ID("31"), review.ID)
	assert.Equal(t, models.ID("7"), review.RecipeID)
	assert.Equal(t, 4, review.Rating)
}

func TestCreateReviewValidatesBeforeCalling(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CreateReview(context.Background(), models.NewReview{RecipeID: 7, Rating: 0, Comment: "x"})
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = c.CreateReview(context.Background(), models.NewReview{RecipeID: 7, Rating: 3, Comment: "  "})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.False(t, called)
}

func TestRecipeReviewsUnwrapsNestedList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id":7,"reseñas":[{"id":1,"puntuacion":5,"comentario":"Top","usuario":"ana"}]}]}`)
	})

	list, err := c.RecipeReviews(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana", list[0].Author)
	assert.Equal(t, 5, list[0].Rating)
}

func TestRecipeReviewsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[]}`)
	})

	list, err := c.RecipeReviews(context.Background(), "7")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDecodeListShapes(t *testing.T) {
	for name, raw := range map[string]string{
		"envelope": `{"data":[{"id":1,"nombre":"Huevo"}]}`,
		"bare":     `[{"id":1,"nombre":"Huevo"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			list, err := decodeList[models.Ingredient](json.RawMessage(raw))
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "Huevo", list[0].Name)
		})
	}

	list, err := decodeList[models.Ingredient](json.RawMessage(`{"data":null}`))
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestLoginReturnsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds.Email)
		io.WriteString(w, `{"token":"12|secret","user":{"id":3,"name":"Ana","role":"user"}}`)
	})

	resp, err := c.Login(context.Background(), models.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "12|secret", resp.Token)
	assert.Equal(t, models.ID("3"), resp.User.ID)
}

func TestRegisterDefaultsRole(t *testing.T) {
	var reg models.Registration
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		io.WriteString(w, `{"token":"x","user":{"id":1}}`)
	})

	_, err := c.Register(context.Background(), models.Registration{Name: "a", Email: "b", UserName: "c", Password: "d"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, reg.Role)
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "secret", NormalizeToken("12|secret"))
	assert.Equal(t, "plain", NormalizeToken("plain"))
	assert.Equal(t, "", NormalizeToken(""))
	assert.Equal(t, "b|c", NormalizeToken("a|b|c"))
}

func TestCreateTokenIsNormalized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"token":"5|fresh"}`)
	}, WithTokenSource(StaticToken("old")))

	token, err := c.CreateToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestSearchByIngredients(t *testing.T) {
	var body models.IngredientSearch
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `{"recetas":[{"nombre":"Tortilla","IA":true,"ingredientes":["huevo","patata"]}],"recetas_ia":1}`)
	})

	res, err := c.SearchByIngredients(context.Background(), []string{" Huevo", "huevo", "PATATA", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"huevo", "patata"}, body.Ingredients)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Recipes, 1)
	assert.True(t, res.Recipes[0].IsAIGenerated())
}

func TestSearchByIngredientsNeedsInput(t *testing.T) {
	c := New("http://127.0.0.1:0")
	_, err := c.SearchByIngredients(context.Background(), []string{" ", ""})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestPopularIngredientsShapes(t *testing.T) {
	for name, raw := range map[string]string{
		"bare":    `["ajo","cebolla"]`,
		"wrapped": `{"ingredientes":["ajo","cebolla"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, raw)
			})
			list, err := c.PopularIngredients(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"ajo", "cebolla"}, list)
		})
	}
}
