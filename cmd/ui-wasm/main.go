//go:build js && wasm

package main

import "github.com/plantdoc/plantdoc-ui/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
