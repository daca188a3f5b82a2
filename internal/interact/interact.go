package interact

import (
	"fmt"
	"log/slog"

	"github.com/Versifine/stride/internal/event"
)

// Interactable is anything the player can trigger by looking at it and
// pressing the interact control.
type Interactable interface {
	Interact()
}

type TargetProvider interface {
	TryGetTarget() (Interactable, bool)
}

// Panel is the on-screen interaction prompt.
type Panel interface {
	SetVisible(visible bool)
}

type Notifier interface {
	Publish(eventName string, evt any)
}

// Named lets a target report a display name in events and logs.
type Named interface {
	Name() string
}

// Removable targets stop being offered once Removed reports true.
type Removable interface {
	Removed() bool
}

type Handler struct {
	targets  TargetProvider
	panel    Panel
	notifier Notifier
	visible  bool
}

func NewHandler(targets TargetProvider, panel Panel) *Handler {
	return &Handler{targets: targets, panel: panel}
}

func (h *Handler) SetNotifier(n Notifier) {
	h.notifier = n
}

// Update runs once per frame. The prompt is shown only while a target is
// aimed at with a pointer device; a press triggers the target whatever the
// device. Reports whether an interaction fired.
func (h *Handler) Update(analog, pressed bool) bool {
	var (
		target Interactable
		ok     bool
	)
	if h.targets != nil {
		target, ok = h.targets.TryGetTarget()
	}
	h.setVisible(ok && !analog)

	if !ok || !pressed {
		return false
	}

	target.Interact()
	name := NameOf(target)
	slog.Debug("Interacted", "target", name)
	if h.notifier != nil {
		h.notifier.Publish(event.EventInteracted, event.InteractEvent{Target: name})
	}
	return true
}

func (h *Handler) PanelVisible() bool {
	return h.visible
}

func (h *Handler) setVisible(v bool) {
	h.visible = v
	if h.panel != nil {
		h.panel.SetVisible(v)
	}
}

func NameOf(target Interactable) string {
	if n, ok := target.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", target)
}
