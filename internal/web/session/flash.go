package session

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const flashKey = "flash"

// Flash levels, matching the css alert classes.
const (
	LevelSuccess = "success"
	LevelError   = "danger"
	LevelInfo    = "info"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Level string
	Text  string
}

// AddFlash queues a message for the visitor's next page view.
// Messages queued before the page is rendered are all shown, in order.
func AddFlash(c *fiber.Ctx, level, text string) {
	if Store == nil {
		return
	}

	sess, err := Store.Get(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to load session for flash message")
		return
	}

	var flashes []Flash
	if raw, ok := sess.Get(flashKey).(string); ok {
		if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
			log.Warn().Err(err).Msg("dropping unreadable flash messages")

			flashes = nil
		}
	}

	flashes = append(flashes, Flash{Level: level, Text: text})

	out, _ := json.Marshal(flashes)
	sess.Set(flashKey, string(out))

	if err := sess.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save flash message")
	}
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(c *fiber.Ctx) []Flash {
	if Store == nil {
		return nil
	}

	sess, err := Store.Get(c)
	if err != nil {
		return nil
	}

	raw, ok := sess.Get(flashKey).(string)
	if !ok {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		log.Warn().Err(err).Msg("dropping unreadable flash messages")
	}

	sess.Delete(flashKey)

	if err := sess.Save(); err != nil {
		log.Error().Err(err).Msg("failed to clear flash messages")
	}

	return flashes
}
