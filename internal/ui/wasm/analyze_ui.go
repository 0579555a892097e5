//go:build js && wasm

package wasm

import (
	"bytes"
	"context"
	"errors"
	"syscall/js"

	"github.com/plantdoc/plantdoc-ui/internal/ui/analyze"
)

// analyzeImageAPI posts file and location to the analysis endpoint and
// returns a Promise settled with the decoded result.
func (a *app) analyzeImageAPI(file js.Value, location string) js.Value {
	promiseCtor := js.Global().Get("Promise")
	executor := js.FuncOf(func(this js.Value, args []js.Value) any {
		resolve, reject := arg(args, 0), arg(args, 1)
		go func() {
			result, err := a.analyzeFile(file, location)
			if err != nil {
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke(js.ValueOf(map[string]any(result)))
		}()
		return nil
	})
	defer executor.Release()
	return promiseCtor.New(executor)
}

func (a *app) analyzeFile(file js.Value, location string) (map[string]any, error) {
	if !file.Truthy() || file.Get("arrayBuffer").Type() != js.TypeFunction {
		err := errors.New("analyze: argument is not a File")
		a.logger.Error("analyze", "Analysis API error", err, nil)
		return nil, err
	}
	buffer, err := await(file.Call("arrayBuffer"))
	if err != nil {
		a.logger.Error("analyze", "read file", err, nil)
		return nil, err
	}
	data := make([]byte, buffer.Get("byteLength").Int())
	js.CopyBytesToGo(data, js.Global().Get("Uint8Array").New(buffer))

	name := "upload"
	if n := file.Get("name"); n.Type() == js.TypeString && n.String() != "" {
		name = n.String()
	}
	return a.client.Analyze(context.Background(), analyze.Upload{Name: name, Body: bytes.NewReader(data)}, location)
}
