// Package replyview holds the page-lifetime state machine behind the
// inline reply forms on a challenge view. At most one reply form is
// visible at a time; the controller owns that state instead of it being
// scattered across the rendered markup.
package replyview

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultFocusDelay is how long the controller waits after showing a
// form before moving focus into its text field, giving layout time to
// settle.
const DefaultFocusDelay = 100 * time.Millisecond

// View is the rendering surface the controller drives. FocusAfter is
// fire-and-forget: the view schedules the focus move itself and the
// controller never waits on it.
type View interface {
	FormIDs() []int64
	Exists(commentID int64) bool
	Show(commentID int64)
	Hide(commentID int64)
	Clear(commentID int64)
	ScrollTo(commentID int64)
	FocusAfter(commentID int64, delay time.Duration)
}

// Controller toggles reply-form visibility. Not safe for concurrent
// use; it models a single-threaded, event-driven UI surface.
type Controller struct {
	view       View
	log        zerolog.Logger
	visible    *int64
	focusDelay time.Duration
}

// NewController creates a controller and forces every form hidden,
// whatever state the markup mounted in.
func NewController(view View, log zerolog.Logger) *Controller {
	c := &Controller{
		view:       view,
		log:        log.With().Str("component", "replyview").Logger(),
		focusDelay: DefaultFocusDelay,
	}
	c.HideAll()
	return c
}

// Visible returns the id of the currently visible reply form, if any.
func (c *Controller) Visible() (int64, bool) {
	if c.visible == nil {
		return 0, false
	}
	return *c.visible, true
}

// Toggle hides and clears every open reply form, then shows the form
// for commentID, scrolls it into view and schedules focus into its text
// field. An unknown or zero id is logged and ignored.
func (c *Controller) Toggle(commentID int64) {
	if commentID == 0 {
		c.log.Error().Msg("comment id missing on reply toggle")
		return
	}
	if !c.view.Exists(commentID) {
		c.log.Error().Int64("comment_id", commentID).Msg("reply form not found")
		return
	}

	c.HideAll()

	c.view.Show(commentID)
	id := commentID
	c.visible = &id

	c.view.ScrollTo(commentID)
	c.view.FocusAfter(commentID, c.focusDelay)
}

// Cancel clears and hides the form for commentID, leaving any other
// form alone.
func (c *Controller) Cancel(commentID int64) {
	if commentID == 0 {
		c.log.Error().Msg("comment id missing on reply cancel")
		return
	}
	if !c.view.Exists(commentID) {
		c.log.Error().Int64("comment_id", commentID).Msg("reply form not found")
		return
	}

	c.view.Clear(commentID)
	c.view.Hide(commentID)
	if c.visible != nil && *c.visible == commentID {
		c.visible = nil
	}
}

// HideAll clears and hides every reply form in the view. It runs on
// mount and as the first step of Toggle.
func (c *Controller) HideAll() {
	for _, id := range c.view.FormIDs() {
		c.view.Clear(id)
		c.view.Hide(id)
	}
	c.visible = nil
}
