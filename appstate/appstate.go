// Package appstate is the shared, process-wide view of the backend's
// collections. It is built once by main, loaded with Init and torn down
// with Close.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"saborify/models"
)

// MostViewedSize is how many recipes the "most viewed" sample holds.
const MostViewedSize = 9

var ErrClosed = errors.New("appstate: store closed")

// Loader is the part of the API client the store reads through.
type Loader interface {
	ListRecipes(ctx context.Context, filters url.Values) ([]models.Recipe, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	Allergens(ctx context.Context) ([]models.Allergen, error)
	AllergenGroups(ctx context.Context) ([]models.AllergenGroup, error)
	TopRatedRecipes(ctx context.Context) ([]models.Recipe, error)
	Difficulties(ctx context.Context) ([]models.Difficulty, error)
}

const EventRecipesChanged = "recipes-changed"

type Event struct {
	Type  string    `json:"type"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

type Store struct {
	loader Loader

	mu           sync.RWMutex
	rnd          *rand.Rand
	initialized  bool
	closed       bool
	recipes      []models.Recipe
	mostViewed   []models.Recipe
	topRated     []models.Recipe
	ingredients  []models.Ingredient
	allergens    []models.Allergen
	groups       []models.AllergenGroup
	difficulties []models.Difficulty

	selectedRecipe     models.Recipe
	selectedIngredient models.Ingredient
	selectedAllergen   string

	listeners []func(Event)
}

type Option func(*Store)

// WithRand fixes the source used for the most viewed sample.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rnd = r }
}

func New(loader Loader, opts ...Option) *Store {
	s := &Store{
		loader: loader,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init runs the six read-only loads once. A failed load is logged and
// leaves its collection empty; the joined errors are returned for callers
// that care. Later calls do nothing.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	s.mu.Unlock()

	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs []error
	)
	load := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Printf("[appstate] load %s: %v", name, err)
				emu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				emu.Unlock()
			}
		}()
	}

	load("recipes", func() error {
		list, err := s.loader.ListRecipes(ctx, nil)
		if err != nil {
			return err
		}
		s.SetRecipes(list)
		return nil
	})
	load("ingredients", func() error {
		list, err := s.loader.ListIngredients(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.ingredients = list
		s.mu.Unlock()
		return nil
	})
	load("allergens", func() error {
		list, err := s.loader.Allergens(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.allergens = list
		s.mu.Unlock()
		return nil
	})
	load("allergen groups", func() error {
		list, err := s.loader.AllergenGroups(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.groups = list
		s.mu.Unlock()
		return nil
	})
	load("top rated", func() error {
		list, err := s.loader.TopRatedRecipes(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.topRated = list
		s.mu.Unlock()
		return nil
	})
	load("difficulties", func() error {
		list, err := s.loader.Difficulties(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.difficulties = list
		s.mu.Unlock()
		return nil
	})

	wg.Wait()
	return errors.Join(errs...)
}

// RefreshRecipes re-fetches the recipe collection. On failure the previous
// collection stays in place.
func (s *Store) RefreshRecipes(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}
	list, err := s.loader.ListRecipes(ctx, nil)
	if err != nil {
		return fmt.Errorf("appstate: refresh recipes: %w", err)
	}
	s.SetRecipes(list)
	return nil
}

// RefreshIngredients re-fetches the ingredient collection, keeping the
// previous one on failure.
func (s *Store) RefreshIngredients(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}
	list, err := s.loader.ListIngredients(ctx)
	if err != nil {
		return fmt.Errorf("appstate: refresh ingredients: %w", err)
	}
	s.mu.Lock()
	if !s.closed {
		s.ingredients = list
	}
	s.mu.Unlock()
	return nil
}

// SetRecipes replaces the recipe collection and redraws the most viewed
// sample.
func (s *Store) SetRecipes(list []models.Recipe) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.recipes = append([]models.Recipe(nil), list...)
	s.mostViewed = s.sampleLocked()
	listeners := append([]func(Event){}, s.listeners...)
	count := len(s.recipes)
	s.mu.Unlock()

	ev := Event{Type: EventRecipesChanged, Count: count, At: time.Now()}
	for _, fn := range listeners {
		fn(ev)
	}
}

// sampleLocked takes a random permutation of the recipes truncated to
// MostViewedSize.
func (s *Store) sampleLocked() []models.Recipe {
	n := len(s.recipes)
	if n == 0 {
		return nil
	}
	perm := s.rnd.Perm(n)
	size := min(MostViewedSize, n)
	out := make([]models.Recipe, size)
	for i := 0; i < size; i++ {
		out[i] = s.recipes[perm[i]]
	}
	return out
}

// Subscribe registers fn for state events. fn runs on the goroutine that
// changed the state and must not block.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// Close drops every collection and listener. Safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.recipes, s.mostViewed, s.topRated = nil, nil, nil
	s.ingredients, s.allergens, s.groups, s.difficulties = nil, nil, nil, nil
	s.selectedRecipe = models.Recipe{}
	s.selectedIngredient = models.Ingredient{}
	s.selectedAllergen = ""
	s.listeners = nil
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
