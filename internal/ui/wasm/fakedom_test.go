//go:build js && wasm

package wasm

import (
	"strings"
	"syscall/js"
	"testing"
	"time"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
	"github.com/plantdoc/plantdoc-ui/internal/ui/prefs"
)

// fakeDOM is a minimal document/window pair built from plain JS objects. It
// implements only what the handlers touch.
type fakeDOM struct {
	funcs     []js.Func
	created   []*fakeElement
	byID      map[string]*fakeElement
	document  *fakeElement
	body      *fakeElement
	window    js.Value
	alerts    []string
	opened    [][]string
	execCalls []string
}

type fakeElement struct {
	dom       *fakeDOM
	obj       js.Value
	listeners map[string][]js.Value
	classes   map[string]bool
	children  []*fakeElement
	parent    *fakeElement
}

func newFakeDOM(t *testing.T) *fakeDOM {
	t.Helper()
	dom := &fakeDOM{byID: make(map[string]*fakeElement)}
	dom.document = dom.newElement("#document")
	dom.body = dom.newElement("body")
	dom.body.parent = dom.document
	dom.document.obj.Set("body", dom.body.obj)

	dom.method(dom.document.obj, "getElementById", func(args []js.Value) any {
		id := args[0].String()
		if el, ok := dom.byID[id]; ok {
			return el.obj
		}
		for _, el := range dom.created {
			if el.parent != nil && el.obj.Get("id").String() == id {
				return el.obj
			}
		}
		return js.Null()
	})
	dom.method(dom.document.obj, "createElement", func(args []js.Value) any {
		return dom.newElement(args[0].String()).obj
	})
	dom.method(dom.document.obj, "execCommand", func(args []js.Value) any {
		dom.execCalls = append(dom.execCalls, args[0].String())
		return true
	})

	window := js.Global().Get("Object").New()
	location := js.Global().Get("Object").New()
	location.Set("origin", "https://plants.example")
	window.Set("location", location)
	window.Set("navigator", js.Global().Get("Object").New())
	dom.method(window, "alert", func(args []js.Value) any {
		dom.alerts = append(dom.alerts, args[0].String())
		return nil
	})
	dom.method(window, "open", func(args []js.Value) any {
		call := make([]string, len(args))
		for i, a := range args {
			call[i] = a.String()
		}
		dom.opened = append(dom.opened, call)
		return nil
	})
	dom.window = window

	Document = dom.document.obj
	t.Cleanup(func() {
		// Let pending toast timers fire against this document.
		time.Sleep(20 * time.Millisecond)
		releaseHandlers()
		for _, fn := range dom.funcs {
			fn.Release()
		}
		Document = js.Value{}
	})
	return dom
}

func (d *fakeDOM) method(obj js.Value, name string, fn func(args []js.Value) any) {
	bound := js.FuncOf(func(this js.Value, args []js.Value) any {
		return fn(args)
	})
	d.funcs = append(d.funcs, bound)
	obj.Set(name, bound)
}

func (d *fakeDOM) newElement(tag string) *fakeElement {
	obj := js.Global().Get("Object").New()
	el := &fakeElement{
		dom:       d,
		obj:       obj,
		listeners: make(map[string][]js.Value),
		classes:   make(map[string]bool),
	}
	obj.Set("tagName", tag)
	obj.Set("id", "")
	obj.Set("className", "")
	obj.Set("value", "")
	obj.Set("style", js.Global().Get("Object").New())
	obj.Set("dataset", js.Global().Get("Object").New())
	obj.Set("parentNode", js.Null())

	classList := js.Global().Get("Object").New()
	d.method(classList, "add", func(args []js.Value) any {
		el.classes[args[0].String()] = true
		return nil
	})
	d.method(classList, "remove", func(args []js.Value) any {
		delete(el.classes, args[0].String())
		return nil
	})
	d.method(classList, "contains", func(args []js.Value) any {
		return el.classes[args[0].String()]
	})
	d.method(classList, "toggle", func(args []js.Value) any {
		name := args[0].String()
		on := !el.classes[name]
		if len(args) > 1 && args[1].Type() == js.TypeBoolean {
			on = args[1].Bool()
		}
		if on {
			el.classes[name] = true
		} else {
			delete(el.classes, name)
		}
		return on
	})
	obj.Set("classList", classList)

	d.method(obj, "addEventListener", func(args []js.Value) any {
		event := args[0].String()
		el.listeners[event] = append(el.listeners[event], args[1])
		return nil
	})
	d.method(obj, "appendChild", func(args []js.Value) any {
		child := d.lookup(args[0])
		if child.parent != nil {
			child.parent.detach(child)
		}
		child.parent = el
		el.children = append(el.children, child)
		child.obj.Set("parentNode", obj)
		return args[0]
	})
	d.method(obj, "remove", func(args []js.Value) any {
		if el.parent != nil {
			el.parent.detach(el)
		}
		return nil
	})
	d.method(obj, "contains", func(args []js.Value) any {
		return el.containsValue(args[0])
	})
	d.method(obj, "querySelector", func(args []js.Value) any {
		if found := el.findByClass(strings.TrimPrefix(args[0].String(), ".")); found != nil {
			return found.obj
		}
		return js.Null()
	})
	d.method(obj, "querySelectorAll", func(args []js.Value) any {
		return js.Global().Get("Array").New()
	})
	d.method(obj, "getAttribute", func(args []js.Value) any { return js.Null() })
	d.method(obj, "setAttribute", func(args []js.Value) any { return nil })
	d.method(obj, "closest", func(args []js.Value) any { return js.Null() })
	d.method(obj, "select", func(args []js.Value) any { return nil })

	d.created = append(d.created, el)
	return el
}

// add registers a page element with id and attaches it to the body.
func (d *fakeDOM) add(id, tag string) *fakeElement {
	el := d.newElement(tag)
	el.obj.Set("id", id)
	d.byID[id] = el
	d.body.obj.Call("appendChild", el.obj)
	return el
}

func (d *fakeDOM) lookup(v js.Value) *fakeElement {
	for _, el := range d.created {
		if el.obj.Equal(v) {
			return el
		}
	}
	panic("unknown element")
}

func (el *fakeElement) detach(child *fakeElement) {
	for i, c := range el.children {
		if c == child {
			el.children = append(el.children[:i], el.children[i+1:]...)
			break
		}
	}
	child.parent = nil
	child.obj.Set("parentNode", js.Null())
}

func (el *fakeElement) containsValue(v js.Value) bool {
	if el.obj.Equal(v) {
		return true
	}
	for _, c := range el.children {
		if c.containsValue(v) {
			return true
		}
	}
	return false
}

func (el *fakeElement) hasClass(name string) bool {
	for _, c := range strings.Fields(el.obj.Get("className").String()) {
		if c == name {
			return true
		}
	}
	return false
}

func (el *fakeElement) findByClass(name string) *fakeElement {
	for _, c := range el.children {
		if c.hasClass(name) {
			return c
		}
		if found := c.findByClass(name); found != nil {
			return found
		}
	}
	return nil
}

// childrenWithClass returns the direct children carrying class name.
func (el *fakeElement) childrenWithClass(name string) []*fakeElement {
	var out []*fakeElement
	for _, c := range el.children {
		if c.hasClass(name) {
			out = append(out, c)
		}
	}
	return out
}

// dispatch invokes every listener for event and returns how many times the
// handlers called preventDefault.
func (el *fakeElement) dispatch(event string, target js.Value) int {
	prevented := 0
	evt := js.Global().Get("Object").New()
	evt.Set("target", target)
	prevent := js.FuncOf(func(this js.Value, args []js.Value) any {
		prevented++
		return nil
	})
	defer prevent.Release()
	evt.Set("preventDefault", prevent)
	for _, listener := range el.listeners[event] {
		listener.Invoke(evt)
	}
	return prevented
}

func fakeFileList(files ...map[string]any) js.Value {
	list := make([]any, len(files))
	for i, f := range files {
		list[i] = f
	}
	return js.ValueOf(list)
}

func newTestApp(dom *fakeDOM) *app {
	cfg := model.DefaultClientConfig()
	cfg.ToastLifetimeMS = 1
	return &app{
		window:   dom.window,
		cfg:      cfg,
		darkMode: prefs.NewDarkMode(prefs.NewMemoryStore()),
	}
}
