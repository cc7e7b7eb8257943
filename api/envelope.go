package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// The backend wraps most collections in {"data": [...]}, but a few lookups
// return the bare array. Both shapes decode the same way.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	if raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		raw = bytes.TrimSpace(env.Data)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return []T{}, nil
		}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeOne accepts {"data": obj}, {"data": [obj, ...]} or the bare object.
// found is false when the envelope held an empty list.
func decodeOne[T any](raw json.RawMessage) (v T, found bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return v, false, nil
	}
	if raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return v, false, err
		}
		if data := bytes.TrimSpace(env.Data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			raw = data
		}
	}
	if raw[0] == '[' {
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return v, false, err
		}
		if len(list) == 0 {
			return v, false, nil
		}
		return list[0], true, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// NormalizeToken strips the "<id>|" prefix of personal access tokens.
func NormalizeToken(token string) string {
	if i := strings.IndexByte(token, '|'); i >= 0 {
		return token[i+1:]
	}
	return token
}
