// Package favorites keeps a browser's favourite recipes as full snapshots.
// The list is read from the kv store on every call and rewritten whole on
// every change.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"saborify/kv"
	"saborify/models"
)

const Key = "favorites"

type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) List(ctx context.Context) ([]models.Recipe, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.Recipe{}, nil
	}
	if err != nil {
		return nil, err
	}
	var list []models.Recipe
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("favorites: decode: %w", err)
	}
	if list == nil {
		list = []models.Recipe{}
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []models.Recipe) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("favorites: encode: %w", err)
	}
	return s.kv.Set(ctx, Key, data)
}

func indexOf(list []models.Recipe, id Identity) int {
	if id.IsZero() {
		return -1
	}
	for i, r := range list {
		if IdentityOf(r).Equal(id) {
			return i
		}
	}
	return -1
}

func (s *Store) Contains(ctx context.Context, r models.Recipe) (bool, error) {
	list, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(list, IdentityOf(r)) >= 0, nil
}

// Add appends r unless an equal favourite is already stored. Reports
// whether the list changed.
func (s *Store) Add(ctx context.Context, r models.Recipe) (bool, error) {
	id := IdentityOf(r)
	if id.IsZero() {
		return false, fmt.Errorf("%w: recipe has no id", models.ErrValidation)
	}
	list, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(list, id) >= 0 {
		return false, nil
	}
	return true, s.save(ctx, append(list, r))
}

// Remove drops every favourite equal to r. Reports whether anything went.
func (s *Store) Remove(ctx context.Context, r models.Recipe) (bool, error) {
	return s.removeIdentity(ctx, IdentityOf(r))
}

// RemoveByID drops a persisted favourite by backend id.
func (s *Store) RemoveByID(ctx context.Context, id models.ID) (bool, error) {
	return s.removeIdentity(ctx, Identity{Kind: Persisted, Key: id.String()})
}

// RemoveByHash drops an AI favourite by its content hash.
func (s *Store) RemoveByHash(ctx context.Context, hash string) (bool, error) {
	return s.removeIdentity(ctx, Identity{Kind: Ephemeral, Key: hash})
}

func (s *Store) removeIdentity(ctx context.Context, id Identity) (bool, error) {
	list, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	kept := list[:0]
	for _, r := range list {
		if !IdentityOf(r).Equal(id) {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, s.save(ctx, kept)
}

// Toggle adds r when absent and removes it when present. Returns the new
// membership.
func (s *Store) Toggle(ctx context.Context, r models.Recipe) (bool, error) {
	removed, err := s.Remove(ctx, r)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := s.Add(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateRating copies a freshly fetched rating into the stored snapshot of
// a persisted favourite. Absent favourites are left alone.
func (s *Store) UpdateRating(ctx context.Context, id models.ID, rating *float64) (bool, error) {
	list, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(list, Identity{Kind: Persisted, Key: id.String()})
	if i < 0 {
		return false, nil
	}
	list[i].Rating = rating
	return true, s.save(ctx, list)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, Key)
}
