// Package flash implements one-shot notifications carried across a
// redirect in a cookie and discarded after their first render.
package flash

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

// Categories map onto the alert styles the templates use.
const (
	Success = "bg-success"
	Error   = "bg-danger"
)

// Message is a single pending notification.
type Message struct {
	Category string
	Text     string
}

// Set queues a message for the next rendered page.
func Set(c *gin.Context, category, text string) {
	value := url.QueryEscape(category) + ":" + url.QueryEscape(text)
	c.SetCookie(cookieName, value, 300, "/", "", false, true)
}

// Pop returns the pending message, if any, and clears it so it is shown
// exactly once.
func Pop(c *gin.Context) *Message {
	value, err := c.Cookie(cookieName)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	category, text, found := strings.Cut(value, ":")
	if !found {
		return nil
	}
	cat, err := url.QueryUnescape(category)
	if err != nil {
		return nil
	}
	txt, err := url.QueryUnescape(text)
	if err != nil {
		return nil
	}
	return &Message{Category: cat, Text: txt}
}
