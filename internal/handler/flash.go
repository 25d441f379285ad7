package handler

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSessionName = "helpcenter-flash"

// FlashStore keeps one-shot notices in a signed cookie between a form post
// and the page it redirects to.
type FlashStore struct {
	store *sessions.CookieStore
}

func NewFlashStore(secret string, secure bool) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

// Add queues a notice for the next page view.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, notice string) error {
	session, err := f.store.Get(r, flashSessionName)
	if err != nil && session == nil {
		return err
	}
	session.AddFlash(notice)
	return session.Save(r, w)
}

// Pop returns and clears the queued notices. A tampered or stale cookie
// yields none.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []string {
	session, err := f.store.Get(r, flashSessionName)
	if err != nil || session == nil {
		return nil
	}
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		return nil
	}

	notices := make([]string, 0, len(flashes))
	for _, v := range flashes {
		if s, ok := v.(string); ok {
			notices = append(notices, s)
		}
	}
	return notices
}
