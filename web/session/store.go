package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/google/uuid"
	gorillasessions "github.com/gorilla/sessions"
	"github.com/gorilla/securecookie"
)

const defaultMaxAge = 86400

var errSessionNotFound = errors.New("session not found")

// backend persists encoded session values under an id.
type backend interface {
	load(ctx context.Context, id string) ([]byte, error)
	save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	delete(ctx context.Context, id string) error
}

// serverStore keeps session values server side and only a signed session id
// in the cookie.
type serverStore struct {
	backend backend
	Codecs  []securecookie.Codec
	options *sessions.Options
}

func newServerStore(b backend, keyPairs ...[]byte) *serverStore {
	return &serverStore{
		backend: b,
		Codecs:  securecookie.CodecsFromPairs(keyPairs...),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (s *serverStore) Options(opts sessions.Options) {
	s.options = &opts
}

func (s *serverStore) Get(r *http.Request, name string) (*gorillasessions.Session, error) {
	return gorillasessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or an empty one when
// the cookie is missing, forged or points at an expired entry.
func (s *serverStore) New(r *http.Request, name string) (*gorillasessions.Session, error) {
	session := gorillasessions.NewSession(s, name)
	session.Options = s.options.ToGorillaOptions()
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, nil
	}
	if err := s.load(r.Context(), session); err == nil {
		session.IsNew = false
	}
	return session, nil
}

func (s *serverStore) Save(r *http.Request, w http.ResponseWriter, session *gorillasessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.backend.delete(r.Context(), session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, s.newCookie(session, ""))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if err := s.save(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.newCookie(session, encoded))
	return nil
}

func (s *serverStore) newCookie(session *gorillasessions.Session, value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     session.Name(),
		Value:    value,
		Path:     session.Options.Path,
		Domain:   session.Options.Domain,
		MaxAge:   session.Options.MaxAge,
		Secure:   session.Options.Secure,
		HttpOnly: session.Options.HttpOnly,
		SameSite: session.Options.SameSite,
	}
	if session.Options.MaxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second)
	}
	return cookie
}

func (s *serverStore) save(ctx context.Context, session *gorillasessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("failed to encode session values: %w", err)
	}

	maxAge := session.Options.MaxAge
	if maxAge == 0 {
		maxAge = s.options.MaxAge
	}
	return s.backend.save(ctx, session.ID, buf.Bytes(), time.Duration(maxAge)*time.Second)
}

func (s *serverStore) load(ctx context.Context, session *gorillasessions.Session) error {
	data, err := s.backend.load(ctx, session.ID)
	if err != nil {
		return err
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		return fmt.Errorf("failed to decode session data: %w", err)
	}
	return nil
}
