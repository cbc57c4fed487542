package security

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const flashCookie = "creativehub_flash"

// Flash message types
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage is a one-time status message shown after a redirect.
type FlashMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Flashes stores flash messages in a signed cookie: written by the
// redirecting handler, consumed once by the next view.
type Flashes struct {
	codec *securecookie.SecureCookie
}

// NewFlashes creates a flash-cookie codec with the given signing keys.
func NewFlashes(hashKey, blockKey []byte) *Flashes {
	return &Flashes{codec: securecookie.New(hashKey, blockKey)}
}

// Add appends a message to the pending flash cookie.
func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, typ, message string) {
	messages := f.peek(r)
	messages = append(messages, FlashMessage{Type: typ, Message: message})

	value, err := f.codec.Encode(flashCookie, messages)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns all pending messages and clears the cookie.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) []FlashMessage {
	messages := f.peek(r)
	if len(messages) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
	}
	return messages
}

func (f *Flashes) peek(r *http.Request) []FlashMessage {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	var messages []FlashMessage
	if err := f.codec.Decode(flashCookie, cookie.Value, &messages); err != nil {
		return nil
	}
	return messages
}
