package shop

import (
	"time"

	"github.com/hadilasm31/lamiti/internal/storage"
)

// Admin is the back-office login gate.
//
// This is a demo-only gate, NOT an auth boundary: the credential lives in
// client-side configuration and is trivially bypassable. A real deployment
// needs server-side credential verification.
type Admin struct {
	store storage.Store
	bus   *Bus
	clock Clock

	username string
	password string
	ttl      time.Duration
}

// Session is the persisted admin login record. It is valid for a fixed
// window from LoginTime, checked by wall-clock difference at each load.
type Session struct {
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}

// NewAdmin creates the gate with the configured demo credential and
// session window.
func NewAdmin(st storage.Store, bus *Bus, clock Clock, username, password string, ttl time.Duration) *Admin {
	return &Admin{store: st, bus: bus, clock: clock, username: username, password: password, ttl: ttl}
}

// Login checks the credential and persists a fresh session.
func (a *Admin) Login(username, password string) error {
	if username != a.username || password != a.password {
		return NewInvalidCredentialsError()
	}

	now := a.clock.Now()
	if err := a.store.Put(storage.KeyAdminSession, Session{Username: username, LoginTime: now}); err != nil {
		return err
	}
	a.bus.Publish(Event{Topic: TopicSession, Detail: "login", At: now})
	return nil
}

// Logout removes the persisted session.
func (a *Admin) Logout() error {
	if err := a.store.Delete(storage.KeyAdminSession); err != nil {
		return err
	}
	a.bus.Publish(Event{Topic: TopicSession, Detail: "logout", At: a.clock.Now()})
	return nil
}

// Session returns the persisted session, if present.
func (a *Admin) Session() (Session, bool, error) {
	var s Session
	found, err := a.store.Get(storage.KeyAdminSession, &s)
	if err != nil {
		return Session{}, false, err
	}
	return s, found, nil
}

// Valid reports whether a session exists and its window has not elapsed.
func (a *Admin) Valid() (bool, error) {
	s, found, err := a.Session()
	if err != nil || !found {
		return false, err
	}
	return a.clock.Now().Sub(s.LoginTime) < a.ttl, nil
}
