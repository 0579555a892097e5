//go:build js && wasm

package wasm

import (
	"strconv"
	"syscall/js"

	"github.com/plantdoc/plantdoc-ui/internal/ui/lazyload"
	"github.com/plantdoc/plantdoc-ui/internal/ui/results"
)

const lazyKeyAttr = "data-lazy-key"

func (a *app) initLazyImages() {
	images := Document.Call("querySelectorAll", lazyload.Selector)
	if images.Get("length").Int() == 0 {
		return
	}
	registry := lazyload.NewRegistry()
	reveal := func(img js.Value) bool {
		src, ok := registry.Reveal(img.Call("getAttribute", lazyKeyAttr).String())
		if !ok {
			return false
		}
		img.Set("src", src)
		img.Get("classList").Call("remove", lazyload.MarkerClass)
		return true
	}

	i := 0
	forEachNode(images, func(img js.Value) {
		key := strconv.Itoa(i)
		i++
		img.Call("setAttribute", lazyKeyAttr, key)
		registry.Add(key, img.Call("getAttribute", lazyload.SourceAttr).String())
	})

	ctor := js.Global().Get("IntersectionObserver")
	if !ctor.Truthy() {
		forEachNode(images, func(img js.Value) { reveal(img) })
		return
	}

	callback := js.FuncOf(func(this js.Value, args []js.Value) any {
		entries, observer := arg(args, 0), arg(args, 1)
		forEachNode(entries, func(entry js.Value) {
			if !entry.Get("isIntersecting").Bool() {
				return
			}
			img := entry.Get("target")
			reveal(img)
			observer.Call("unobserve", img)
		})
		return nil
	})
	FormHandlers = append(FormHandlers, callback)
	observer := ctor.New(callback)
	forEachNode(images, func(img js.Value) {
		observer.Call("observe", img)
	})
}

// updateConfidenceIndicator restyles every indicator for the given score.
func updateConfidenceIndicator(confidence float64) {
	class := results.ConfidenceClass(confidence)
	forEachNode(Document.Call("querySelectorAll", results.IndicatorSelector), func(el js.Value) {
		el.Set("className", class)
	})
}

func initCardFadeIn() {
	i := 0
	forEachNode(Document.Call("querySelectorAll", ".card"), func(card js.Value) {
		card.Get("style").Set("animationDelay", strconv.FormatFloat(float64(i)*0.1, 'f', -1, 64)+"s")
		card.Get("classList").Call("add", "fade-in")
		i++
	})
}

func initSmoothScroll() {
	forEachNode(Document.Call("querySelectorAll", `a[href^="#"]`), func(anchor js.Value) {
		on(anchor, "click", func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			if target := anchorTarget(anchor.Call("getAttribute", "href").String()); target.Truthy() {
				target.Call("scrollIntoView", map[string]any{"behavior": "smooth", "block": "start"})
			}
			return nil
		})
	})
}

// anchorTarget resolves an in-page href. querySelector throws on selectors
// such as a bare "#", which is treated as no target.
func anchorTarget(href string) (target js.Value) {
	defer func() {
		if recover() != nil {
			target = js.Null()
		}
	}()
	if len(href) < 2 {
		return js.Null()
	}
	return Document.Call("querySelector", href)
}
