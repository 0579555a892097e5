//go:build js && wasm

package wasm

import (
	"github.com/plantdoc/plantdoc-ui/internal/ui/prefs"
	"github.com/plantdoc/plantdoc-ui/internal/ui/share"
	"github.com/plantdoc/plantdoc-ui/internal/ui/toast"
)

func (a *app) alert(message string) {
	a.window.Call("alert", message)
}

func (a *app) origin() string {
	return a.window.Get("location").Get("origin").String()
}

// showToast attaches t to the page and removes it by ID once its lifetime
// ends, unless it was dismissed earlier.
func (a *app) showToast(t toast.Toast) {
	body := Document.Get("body")
	if !body.Truthy() {
		return
	}
	el := Document.Call("createElement", "div")
	el.Set("id", t.ID)
	el.Set("className", t.ClassName)
	style := el.Get("style")
	for prop, value := range toast.Style {
		style.Set(prop, value)
	}
	el.Set("innerHTML", t.Markup)
	body.Call("appendChild", el)

	afterDelay(a.cfg.ToastLifetime(), func() {
		if !Document.Truthy() {
			return
		}
		if attached := byID(t.ID); attached.Truthy() {
			attached.Call("remove")
		}
	})
}

// copyResultLink copies the shareable result URL. It blocks on the clipboard
// promise, so callers run it in a goroutine. The toast follows a settled
// write; the copied text is never read back.
func (a *app) copyResultLink(id string) {
	link := share.ResultURL(a.origin(), id)

	clipboard := a.window.Get("navigator").Get("clipboard")
	if clipboard.Truthy() {
		if _, err := await(clipboard.Call("writeText", link)); err != nil {
			warn("clipboard write failed", err.Error())
			return
		}
	} else {
		copyWithTextarea(link)
	}
	a.showToast(toast.Success("Link copied to clipboard!"))
}

func copyWithTextarea(text string) {
	body := Document.Get("body")
	if !body.Truthy() {
		return
	}
	area := Document.Call("createElement", "textarea")
	area.Set("value", text)
	area.Get("style").Set("position", "fixed")
	area.Get("style").Set("opacity", "0")
	body.Call("appendChild", area)
	area.Call("select")
	Document.Call("execCommand", "copy")
	area.Call("remove")
}

func (a *app) shareResult(id, platform string) {
	target, ok := share.URL(share.Platform(platform), share.ResultURL(a.origin(), id), a.cfg.ShareText)
	if !ok {
		return
	}
	a.window.Call("open", target, "_blank", share.PopupFeatures)
}

func (a *app) downloadResultPDF() {
	a.showToast(toast.Info("PDF download feature coming soon!"))
}

func (a *app) initDarkMode() {
	if !a.darkMode.Enabled() {
		return
	}
	if body := Document.Get("body"); body.Truthy() {
		body.Get("classList").Call("add", prefs.DarkModeClass)
	}
}

func (a *app) toggleDarkMode() {
	body := Document.Get("body")
	if !body.Truthy() {
		return
	}
	classList := body.Get("classList")
	enabled, err := a.darkMode.Toggle(classList.Call("contains", prefs.DarkModeClass).Bool())
	if err != nil {
		a.logger.Error("prefs", "persist dark mode", err, nil)
	}
	classList.Call("toggle", prefs.DarkModeClass, enabled)
	a.showToast(toast.Info(prefs.ToggleMessage(enabled)))
}
