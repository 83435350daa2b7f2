// Package flash provides one-shot status messages that survive a redirect.
//
// Handlers queue a message before redirecting; the next rendered page pops
// the queue into its view model. Messages live in their own session cookie
// so popping them never disturbs the auth session.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "eventhub-flash"

// Levels map onto the alert styles the templates render.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Message is a single queued flash message.
type Message struct {
	Level string
	Text  string
}

func init() {
	gob.Register(Message{})
}

var store *sessions.CookieStore

// Init wires the cookie store; call once from bootstrap with the same key
// and cookie options as the auth session store.
func Init(s *sessions.CookieStore) {
	store = s
}

// Success queues a success message.
func Success(w http.ResponseWriter, r *http.Request, text string) {
	add(w, r, LevelSuccess, text)
}

// Info queues an informational message.
func Info(w http.ResponseWriter, r *http.Request, text string) {
	add(w, r, LevelInfo, text)
}

// Warning queues a warning message.
func Warning(w http.ResponseWriter, r *http.Request, text string) {
	add(w, r, LevelWarning, text)
}

// Error queues an error message.
func Error(w http.ResponseWriter, r *http.Request, text string) {
	add(w, r, LevelError, text)
}

func add(w http.ResponseWriter, r *http.Request, level, text string) {
	if store == nil {
		return
	}
	sess, _ := store.Get(r, sessionName)
	sess.AddFlash(Message{Level: level, Text: text})
	_ = sess.Save(r, w)
}

// Pop returns and clears all queued messages for this visitor.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	if store == nil {
		return nil
	}
	sess, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	msgs := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
