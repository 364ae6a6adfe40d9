package navigation

import (
	"errors"
	"testing"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

func TestController_StartsAtHome(t *testing.T) {
	t.Parallel()

	if got := NewController().Current(); got != domain.ViewHome {
		t.Fatalf("Current()=%q, want %q", got, domain.ViewHome)
	}
}

func TestController_FullyConnected(t *testing.T) {
	t.Parallel()

	for _, from := range domain.Views() {
		for _, to := range domain.Views() {
			c := NewController()
			if err := c.Navigate(from); err != nil {
				t.Fatalf("Navigate(%q) err=%v", from, err)
			}
			if err := c.Navigate(to); err != nil {
				t.Fatalf("Navigate(%q -> %q) err=%v", from, to, err)
			}
			if c.Current() != to {
				t.Fatalf("Current()=%q after %q -> %q", c.Current(), from, to)
			}
		}
	}
}

func TestController_RejectsUnknownView(t *testing.T) {
	t.Parallel()

	c := NewController()
	_ = c.Navigate(domain.ViewCabinet)

	err := c.Navigate(domain.View("settings"))
	var uv *UnknownViewError
	if !errors.As(err, &uv) || uv.View != "settings" {
		t.Fatalf("err=%v, want UnknownViewError", err)
	}
	if c.Current() != domain.ViewCabinet {
		t.Fatalf("Current()=%q, want unchanged %q", c.Current(), domain.ViewCabinet)
	}
}
