package favorites

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"

	"saborify/models"
)

type Kind int

const (
	// Persisted recipes have a stable backend id.
	Persisted Kind = iota + 1
	// Ephemeral recipes came from the AI search and only have content.
	Ephemeral
)

func (k Kind) String() string {
	switch k {
	case Persisted:
		return "persisted"
	case Ephemeral:
		return "ephemeral"
	}
	return "unknown"
}

// Identity is the one key favourites are compared by.
type Identity struct {
	Kind Kind
	Key  string
}

func (i Identity) Equal(other Identity) bool {
	return i.Kind == other.Kind && i.Key == other.Key
}

func (i Identity) IsZero() bool { return i.Key == "" }

func (i Identity) String() string { return i.Kind.String() + ":" + i.Key }

// IdentityOf derives the identity of a recipe: its id when it is stored in
// the backend, a content hash of name and ingredient list when it was AI
// generated. A stored recipe without id has the zero identity.
func IdentityOf(r models.Recipe) Identity {
	if r.IsAIGenerated() {
		return Identity{Kind: Ephemeral, Key: ContentHash(r)}
	}
	return Identity{Kind: Persisted, Key: r.ID.String()}
}

// ContentHash is blake2b-256 over the name and the JSON encoding of the
// ingredient list.
func ContentHash(r models.Recipe) string {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []models.RecipeIngredient{}
	}
	payload, _ := json.Marshal(struct {
		Name        string                    `json:"n"`
		Ingredients []models.RecipeIngredient `json:"i"`
	}{r.Name, ingredients})
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
