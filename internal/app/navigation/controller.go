// Package navigation tracks which screen of the app is visible.
package navigation

import (
	"fmt"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

// UnknownViewError is returned when navigating to a screen that does not exist.
type UnknownViewError struct {
	View domain.View
}

func (e *UnknownViewError) Error() string {
	return fmt.Sprintf("unknown view %q", string(e.View))
}

// Controller holds the active screen. Every screen can be reached from every
// other one and there is no terminal state. It is not safe for concurrent
// use; the owning session serializes access.
type Controller struct {
	current domain.View
}

// NewController returns a controller showing the home screen.
func NewController() *Controller {
	return &Controller{current: domain.ViewHome}
}

func (c *Controller) Current() domain.View { return c.current }

// Navigate switches to v. Unknown views leave the current screen unchanged.
func (c *Controller) Navigate(v domain.View) error {
	if !v.Valid() {
		return &UnknownViewError{View: v}
	}
	c.current = v
	return nil
}
