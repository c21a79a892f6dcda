// Package flash implements one-shot feedback messages. Messages flashed
// before a redirect travel in a short-lived cookie; messages flashed on a
// page rendered in the same request are picked up straight from the
// request context. Take returns both and clears the cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "warbler_flash"
	ctxKey     = "flash.pending"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Set queues a message for the next rendered page.
func Set(c *gin.Context, category, text string) {
	msgs := fromContext(c)
	msgs = append(msgs, Message{Category: category, Text: text})
	c.Set(ctxKey, msgs)

	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetCookie(cookieName, base64.URLEncoding.EncodeToString(raw), 300, "/", "", false, true)
}

// Take returns every pending message, carried-over ones from a previous
// redirect first, then the ones flashed during this request, and clears
// them. The two sets never overlap: Set only writes this request's
// messages to the cookie.
func Take(c *gin.Context) []Message {
	msgs := append(fromCookie(c), fromContext(c)...)
	if len(msgs) > 0 {
		c.Set(ctxKey, []Message(nil))
		c.SetCookie(cookieName, "", -1, "/", "", false, true)
	}
	return msgs
}

func fromContext(c *gin.Context) []Message {
	if v, ok := c.Get(ctxKey); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}
	return nil
}

func fromCookie(c *gin.Context) []Message {
	val, err := c.Cookie(cookieName)
	if err != nil || val == "" {
		return nil
	}
	raw, err := base64.URLEncoding.DecodeString(val)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}
