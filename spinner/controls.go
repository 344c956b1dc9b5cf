package spinner

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tickloop/constants"
)

// KeySource yields keys collected since the last call
type KeySource interface {
	Keys() []*tcell.EventKey
}

// Controls is the loop's input handler: it maps keys to spinner adjustments
type Controls struct {
	keys     KeySource
	spinner  *Spinner
	bindings map[rune]func()
}

// NewControls binds a key source to a spinner
func NewControls(keys KeySource, s *Spinner) *Controls {
	return &Controls{keys: keys, spinner: s, bindings: make(map[rune]func())}
}

// Bind attaches an action to a rune key; the spinner keys cannot be rebound
func (c *Controls) Bind(r rune, fn func()) {
	c.bindings[r] = fn
}

// HandleInput applies every pending key
func (c *Controls) HandleInput() error {
	for _, ev := range c.keys.Keys() {
		if ev.Key() != tcell.KeyRune {
			continue
		}

		switch ev.Rune() {
		case '+', '=':
			c.spinner.SetRate(c.spinner.Rate() + constants.SpinRateStep)
		case '-', '_':
			c.spinner.SetRate(c.spinner.Rate() - constants.SpinRateStep)
		case 'r':
			c.spinner.Reverse()
		case '0':
			c.spinner.SetRate(constants.DefaultSpinRate)
		default:
			if fn, ok := c.bindings[ev.Rune()]; ok {
				fn()
			}
			continue
		}
		log.Printf("spinner: rate %.0f deg/s", c.spinner.Rate())
	}
	return nil
}
