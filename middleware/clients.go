package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"saborify/globals"
	"saborify/kv"
)

// Claims identify one browser. The id is the browser's storage namespace,
// the server-side stand-in for local storage.
type Claims struct {
	ClientID string `json:"cid"`
	jwt.RegisteredClaims
}

const cookieTTL = 365 * 24 * time.Hour

type Clients struct {
	secret []byte
	store  kv.Store
	secure bool
}

func NewClients(secret []byte, store kv.Store, secureCookie bool) *Clients {
	return &Clients{secret: secret, store: store, secure: secureCookie}
}

// Identify resolves the browser id from the signed cookie, minting a new one
// when the cookie is missing or does not verify.
func (c *Clients) Identify(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		clientID := ""
		minted := false
		if cookie, err := r.Cookie(globals.CookieName); err == nil {
			if claims, err := c.Validate(cookie.Value); err == nil {
				clientID = claims.ClientID
			}
		}
		if clientID == "" {
			id, token, err := c.Issue()
			if err != nil {
				log.Printf("issue client cookie: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			clientID = id
			minted = true
			http.SetCookie(w, &http.Cookie{
				Name:     globals.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cookieTTL.Seconds()),
				HttpOnly: true,
				Secure:   c.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), globals.ClientIDKey, clientID)
		if minted {
			ctx = context.WithValue(ctx, globals.NewClientKey, true)
		}
		next(w, r.WithContext(ctx), ps)
	}
}

// Issue mints a fresh browser id and its signed token.
func (c *Clients) Issue() (string, string, error) {
	id := uuid.New().String()
	now := time.Now()
	claims := Claims{
		ClientID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cookieTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", "", err
	}
	return id, token, nil
}

func (c *Clients) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid client token: %w", err)
	}
	if claims.ClientID == "" {
		return nil, fmt.Errorf("invalid client token: missing id")
	}
	return claims, nil
}

// ClientID returns the browser id Identify put on the context.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(globals.ClientIDKey).(string)
	return id
}

// Storage is the kv namespace of the calling browser.
func (c *Clients) Storage(r *http.Request) kv.Store {
	return kv.Namespace(c.store, "client:"+ClientID(r.Context())+":")
}
