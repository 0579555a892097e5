//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/plantdoc/plantdoc-ui/internal/ui/location"
	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

// locationUI owns the suggestion dropdown under the location input. Only one
// overlay element exists at a time and a single document click listener
// handles both selection and dismissal.
type locationUI struct {
	input     js.Value
	suggester *location.Suggester
	overlay   location.Overlay
	element   js.Value
}

func (a *app) initLocationAutocomplete() {
	input := byID(model.LocationInputID)
	if !input.Truthy() {
		return
	}
	ui := &locationUI{input: input, suggester: location.NewSuggester(a.cfg)}

	on(input, "input", func(this js.Value, args []js.Value) any {
		ui.update(input.Get("value").String())
		return nil
	})
	on(Document, "click", func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		target := args[0].Get("target")
		insideInput := input.Call("contains", target).Bool()
		insideOverlay := ui.element.Truthy() && ui.element.Call("contains", target).Bool()
		if insideOverlay {
			ui.selectFrom(args[0], target)
			return nil
		}
		if tok := ui.overlay.Dismiss(insideInput, insideOverlay); tok != 0 {
			ui.removeElement()
		}
		return nil
	})
}

func (ui *locationUI) update(query string) {
	if !ui.suggester.Active(query) {
		return
	}
	suggestions := ui.suggester.Suggest(query)
	if len(suggestions) == 0 {
		ui.close()
		return
	}
	ui.show(suggestions)
}

func (ui *locationUI) show(suggestions []string) {
	ui.removeElement()
	ui.overlay.Open()

	el := Document.Call("createElement", "div")
	el.Set("className", location.OverlayClass)
	el.Get("style").Set("zIndex", "1000")
	el.Set("innerHTML", location.OverlayMarkup(suggestions))

	parent := ui.input.Get("parentNode")
	parent.Get("style").Set("position", "relative")
	parent.Call("appendChild", el)
	ui.element = el
}

// selectFrom writes the clicked suggestion into the input. Clicks on the
// overlay's padding leave it open.
func (ui *locationUI) selectFrom(event, target js.Value) {
	item := target.Call("closest", "[data-place]")
	if !item.Truthy() {
		return
	}
	event.Call("preventDefault")
	ui.input.Set("value", item.Get("dataset").Get("place").String())
	ui.close()
}

func (ui *locationUI) close() {
	ui.overlay.Close(ui.overlay.Current())
	ui.removeElement()
}

func (ui *locationUI) removeElement() {
	if ui.element.Truthy() {
		ui.element.Call("remove")
	}
	ui.element = js.Value{}
}
