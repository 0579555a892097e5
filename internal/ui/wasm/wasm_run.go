//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/plantdoc/plantdoc-ui/internal/ui/analyze"
	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
	"github.com/plantdoc/plantdoc-ui/internal/ui/prefs"
	"github.com/plantdoc/plantdoc-ui/internal/ui/toast"
)

// app holds the per-page collaborators shared by the event handlers.
type app struct {
	window   js.Value
	cfg      model.ClientConfig
	darkMode *prefs.DarkMode
	client   *analyze.Client
	logger   consoleLogger
}

// RunApp bootstraps the upload page client and blocks forever.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	Document = window.Get("document")

	origin := window.Get("location").Get("origin").String()

	a := &app{
		window:   window,
		cfg:      loadClientConfig(origin),
		darkMode: prefs.NewDarkMode(newPreferenceStore()),
	}
	a.client = &analyze.Client{BaseURL: origin, Logger: a.logger}

	a.attach()
	a.exportGlobals()

	<-done
	releaseHandlers()
}

// attach wires every page feature whose elements are present. Missing
// elements skip their feature.
func (a *app) attach() {
	a.initDarkMode()
	a.initFileInput()
	a.initUploadForm()
	a.initLocationAutocomplete()
	a.initLazyImages()
	initCardFadeIn()
	initSmoothScroll()
}

// exportGlobals publishes the functions result pages call from inline
// handlers.
func (a *app) exportGlobals() {
	export("showToast", func(this js.Value, args []js.Value) any {
		message := jsString(arg(args, 0))
		severity := model.Severity(jsString(arg(args, 1)))
		a.showToast(toast.New(model.ToastMessage{Text: message, Severity: severity}))
		return nil
	})
	export("copyResultLink", func(this js.Value, args []js.Value) any {
		id := jsString(arg(args, 0))
		go a.copyResultLink(id)
		return nil
	})
	export("shareResult", func(this js.Value, args []js.Value) any {
		a.shareResult(jsString(arg(args, 0)), jsString(arg(args, 1)))
		return nil
	})
	export("downloadResultPDF", func(this js.Value, args []js.Value) any {
		a.downloadResultPDF()
		return nil
	})
	export("toggleDarkMode", func(this js.Value, args []js.Value) any {
		a.toggleDarkMode()
		return nil
	})
	export("updateConfidenceIndicator", func(this js.Value, args []js.Value) any {
		confidence := 0.0
		if c := arg(args, 0); c.Type() == js.TypeNumber {
			confidence = c.Float()
		}
		updateConfidenceIndicator(confidence)
		return nil
	})
	export("analyzeImageAPI", func(this js.Value, args []js.Value) any {
		return a.analyzeImageAPI(arg(args, 0), jsString(arg(args, 1)))
	})
}
