//go:build js && wasm

package wasm

import (
	"strconv"
	"syscall/js"
	"time"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
	"github.com/plantdoc/plantdoc-ui/internal/ui/upload"
)

var previewURL string

func selectedFile(input js.Value) (js.Value, bool) {
	if !input.Truthy() {
		return js.Value{}, false
	}
	files := input.Get("files")
	if !files.Truthy() || files.Get("length").Int() == 0 {
		return js.Value{}, false
	}
	return files.Index(0), true
}

func describeFile(file js.Value) model.SelectedFile {
	return model.SelectedFile{
		Name:      file.Get("name").String(),
		SizeBytes: int64(file.Get("size").Float()),
		MimeType:  file.Get("type").String(),
	}
}

func (a *app) initFileInput() {
	input := byID(model.FileInputID)
	if !input.Truthy() {
		return
	}
	validator := upload.NewValidator(a.cfg)
	on(input, "change", func(this js.Value, args []js.Value) any {
		file, ok := selectedFile(input)
		if !ok {
			return nil
		}
		info := describeFile(file)
		if err := validator.Validate(info); err != nil {
			a.alert(upload.AlertText(err))
			input.Set("value", "")
			return nil
		}
		showFileInfo(input, info)
		previewImage(file)
		return nil
	})
}

// showFileInfo replaces the single info line that follows the picker.
func showFileInfo(input js.Value, info model.SelectedFile) {
	parent := input.Get("parentNode")
	if !parent.Truthy() {
		return
	}
	if existing := parent.Call("querySelector", ".file-info"); existing.Truthy() {
		existing.Call("remove")
	}
	line := Document.Call("createElement", "small")
	line.Set("className", upload.FileInfoClass)
	line.Set("innerHTML", upload.FileInfoMarkup(info))
	parent.Call("appendChild", line)
}

func previewImage(file js.Value) {
	img := byID(model.PreviewImageID)
	wrapper := byID(model.PreviewWrapperID)
	if !img.Truthy() || !wrapper.Truthy() {
		return
	}
	urlAPI := js.Global().Get("URL")
	if !urlAPI.Truthy() {
		return
	}
	if previewURL != "" {
		urlAPI.Call("revokeObjectURL", previewURL)
	}
	previewURL = urlAPI.Call("createObjectURL", file).String()

	img.Set("src", previewURL)
	wrapper.Get("style").Set("display", "block")
	style := img.Get("style")
	style.Set("opacity", "0")
	afterDelay(0, func() {
		style.Set("transition", "opacity 0.3s ease")
		style.Set("opacity", "1")
	})
}

func (a *app) initUploadForm() {
	form := byID(model.UploadFormID)
	if !form.Truthy() {
		return
	}
	on(form, "submit", func(this js.Value, args []js.Value) any {
		_, hasFile := selectedFile(byID(model.FileInputID))
		if err := upload.CheckSubmission(hasFile); err != nil {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			a.alert(upload.AlertText(err))
			return nil
		}

		btn := byID(model.SubmitButtonID)
		loading := byID(model.LoadingID)
		if !btn.Truthy() || !loading.Truthy() {
			return nil
		}
		btn.Get("style").Set("display", "none")
		loading.Get("style").Set("display", "block")
		if bar := loading.Call("querySelector", ".progress-bar"); bar.Truthy() {
			go runSimulatedProgress(bar)
		}
		return nil
	})
}

// runSimulatedProgress animates the cosmetic progress bar until it parks.
// The page normally navigates away first.
func runSimulatedProgress(bar js.Value) {
	progress := upload.NewSimulatedProgress(nil)
	ticker := time.NewTicker(upload.ProgressInterval)
	defer ticker.Stop()
	for range ticker.C {
		width, done := progress.Advance()
		bar.Get("style").Set("width", strconv.FormatFloat(width, 'f', 2, 64)+"%")
		if done {
			return
		}
	}
}
