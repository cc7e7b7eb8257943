// Package session persists the single auth session of a browser.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"saborify/api"
	"saborify/kv"
	"saborify/models"
)

const Key = "session"

type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Save overwrites the current session. Tokens of the form "<id>|<secret>"
// are stored as "<secret>".
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	sess.Token = api.NormalizeToken(sess.Token)
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	return s.kv.Set(ctx, Key, data)
}

// Load returns ok=false when nobody is signed in.
func (s *Store) Load(ctx context.Context) (models.Session, bool, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, err
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, false, fmt.Errorf("session: decode: %w", err)
	}
	if sess.Anonymous() {
		return models.Session{}, false, nil
	}
	return sess, true, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, Key)
}

// Token implements api.TokenSource.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, ok, err := s.Load(ctx)
	if err != nil || !ok {
		return "", err
	}
	return sess.Token, nil
}

// FromAuth stores the session returned by login or registration.
func (s *Store) FromAuth(ctx context.Context, resp models.AuthResponse) (models.Session, error) {
	sess := models.Session{Token: api.NormalizeToken(resp.Token), User: resp.User}
	if sess.Token == "" {
		return models.Session{}, errors.New("session: backend returned no token")
	}
	if err := s.Save(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// UpdateUser merges the fields a profile edit returned into the stored user,
// keeping the previous value for anything the backend left empty.
func (s *Store) UpdateUser(ctx context.Context, u models.User) (models.Session, error) {
	sess, ok, err := s.Load(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, errors.New("session: not signed in")
	}
	if u.Name != "" {
		sess.User.Name = u.Name
	}
	if u.UserName != "" {
		sess.User.UserName = u.UserName
	}
	if u.Email != "" {
		sess.User.Email = u.Email
	}
	if !u.ID.IsZero() {
		sess.User.ID = u.ID
	}
	if err := s.Save(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}
