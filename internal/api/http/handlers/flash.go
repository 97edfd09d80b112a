package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const flashKey = "flash"

// Flash stores one-shot messages in the visitor session.
type Flash struct {
	store *session.Store
}

// NewFlash wraps a session store.
func NewFlash(store *session.Store) *Flash {
	return &Flash{store: store}
}

// Set queues msg for the next page render.
func (f *Flash) Set(c *fiber.Ctx, msg string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashKey, msg)
	return sess.Save()
}

// Pop returns and clears the pending message, if any.
func (f *Flash) Pop(c *fiber.Ctx) string {
	sess, err := f.store.Get(c)
	if err != nil {
		return ""
	}
	msg, _ := sess.Get(flashKey).(string)
	if msg == "" {
		return ""
	}
	sess.Delete(flashKey)
	_ = sess.Save()
	return msg
}
