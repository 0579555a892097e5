//go:build js && wasm

package wasm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"syscall/js"
	"time"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
	"github.com/plantdoc/plantdoc-ui/internal/ui/prefs"
)

var (
	// Document references the global browser document for DOM interactions.
	Document js.Value
	// FormHandlers stores bound js.Func callbacks so they can be released later.
	FormHandlers []js.Func
	// ExportedFuncs holds the callbacks published on window for page scripts.
	ExportedFuncs []js.Func
)

// ClientConfigPath is where the page server publishes the client settings.
const ClientConfigPath = "/ui-config.json"

func byID(id string) js.Value {
	return Document.Call("getElementById", id)
}

func forEachNode(list js.Value, fn func(js.Value)) {
	if !list.Truthy() {
		return
	}
	length := list.Get("length").Int()
	for i := 0; i < length; i++ {
		fn(list.Index(i))
	}
}

// on binds handler to event on target and keeps the js.Func for release.
func on(target js.Value, event string, handler func(this js.Value, args []js.Value) any) {
	fn := js.FuncOf(handler)
	FormHandlers = append(FormHandlers, fn)
	target.Call("addEventListener", event, fn)
}

// export publishes fn as a global function callable from inline page scripts.
func export(name string, fn func(this js.Value, args []js.Value) any) {
	bound := js.FuncOf(fn)
	ExportedFuncs = append(ExportedFuncs, bound)
	js.Global().Set(name, bound)
}

func releaseHandlers() {
	for _, fn := range FormHandlers {
		fn.Release()
	}
	FormHandlers = nil
	for _, fn := range ExportedFuncs {
		fn.Release()
	}
	ExportedFuncs = nil
}

// afterDelay runs fn on the event loop once delay has passed.
func afterDelay(delay time.Duration, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		cb.Release()
		return nil
	})
	js.Global().Call("setTimeout", cb, delay.Milliseconds())
}


// jsString reads an identifier argument that page scripts may pass as either
// a string or a number.
func jsString(v js.Value) string {
	switch v.Type() {
	case js.TypeString:
		return v.String()
	case js.TypeNumber:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case js.TypeUndefined, js.TypeNull:
		return ""
	default:
		return v.Call("toString").String()
	}
}

func arg(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

// await blocks the calling goroutine until promise settles. It must never be
// called from inside a js.FuncOf callback.
func await(promise js.Value) (js.Value, error) {
	type settled struct {
		value js.Value
		err   error
	}
	ch := make(chan settled, 1)
	var onResolve, onReject js.Func
	onResolve = js.FuncOf(func(this js.Value, args []js.Value) any {
		ch <- settled{value: arg(args, 0)}
		return nil
	})
	onReject = js.FuncOf(func(this js.Value, args []js.Value) any {
		reason := arg(args, 0)
		ch <- settled{err: fmt.Errorf("promise rejected: %s", jsString(reason))}
		return nil
	})
	defer onResolve.Release()
	defer onReject.Release()
	promise.Call("then", onResolve, onReject)
	result := <-ch
	return result.value, result.err
}

// consoleLogger writes structured client errors to the browser console.
type consoleLogger struct{}

func (consoleLogger) Error(category, message string, err error, fields map[string]any) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return
	}
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	if len(fields) > 0 {
		if encoded, mErr := json.Marshal(fields); mErr == nil {
			console.Call("error", "["+category+"] "+message, detail, string(encoded))
			return
		}
	}
	console.Call("error", "["+category+"] "+message, detail)
}

func warn(args ...any) {
	console := js.Global().Get("console")
	if console.Truthy() {
		console.Call("warn", args...)
	}
}

// localStore adapts window.localStorage to prefs.Store.
type localStore struct {
	storage js.Value
}

func newPreferenceStore() prefs.Store {
	storage := js.Global().Get("localStorage")
	if !storage.Truthy() {
		return prefs.NewMemoryStore()
	}
	return localStore{storage: storage}
}

func (s localStore) GetItem(key string) (string, bool) {
	value := s.storage.Call("getItem", key)
	if value.Type() != js.TypeString {
		return "", false
	}
	return value.String(), true
}

func (s localStore) SetItem(key, value string) (err error) {
	// Storage quota and privacy-mode failures surface as thrown exceptions.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage setItem: %v", r)
		}
	}()
	s.storage.Call("setItem", key, value)
	return nil
}

// loadClientConfig fetches the published settings and falls back to the
// built-in defaults when the server does not provide them.
func loadClientConfig(origin string) model.ClientConfig {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+ClientConfigPath, nil)
	if err != nil {
		return model.DefaultClientConfig()
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		warn("failed to load client config, using defaults", err.Error())
		return model.DefaultClientConfig()
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		warn("client config unavailable, using defaults", resp.Status)
		return model.DefaultClientConfig()
	}
	var cfg model.ClientConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		warn("invalid client config, using defaults", err.Error())
		return model.DefaultClientConfig()
	}
	return cfg.Normalize()
}
