package viewerpdf

import (
	"encoding/json"
	"strings"
)

// overlayID is the element id of the status overlay.
const overlayID = "pdf-converter-loading"

// Page scripts. Each is a function expression so that it can be handed
// to rod as is or called inline through chromedp with callScript.
const (
	// listImagesJS reports every <img> in document order.
	listImagesJS = `() => Array.from(document.getElementsByTagName('img'), (img) => ({
	src: img.src,
	width: img.width,
	height: img.height,
}))`

	// fetchImageJS returns the bytes behind src as base64. Blob URLs can
	// only be read from inside the page. If the blob has already been
	// revoked, the loaded <img> is drawn onto a canvas instead.
	fetchImageJS = `async (src) => {
	const toBase64 = (blob) => new Promise((resolve, reject) => {
		const reader = new FileReader();
		reader.onload = () => resolve(String(reader.result).split(',')[1] || '');
		reader.onerror = () => reject(reader.error);
		reader.readAsDataURL(blob);
	});
	try {
		const resp = await fetch(src);
		return await toBase64(await resp.blob());
	} catch (e) {
		const img = Array.from(document.getElementsByTagName('img')).find((i) => i.src === src);
		if (!img) {
			throw new Error('image not found: ' + src);
		}
		const canvas = document.createElement('canvas');
		canvas.width = img.naturalWidth || img.width;
		canvas.height = img.naturalHeight || img.height;
		canvas.getContext('2d').drawImage(img, 0, 0, canvas.width, canvas.height);
		return canvas.toDataURL('image/png').split(',')[1];
	}
}`

	// showStatusJS creates the overlay on first use and sets its text.
	showStatusJS = `(id, msg) => {
	let el = document.getElementById(id);
	if (!el) {
		el = document.createElement('div');
		el.id = id;
		el.style.cssText = 'position:fixed;top:20px;right:20px;background:rgba(0,0,0,0.8);' +
			'color:white;padding:15px 20px;border-radius:5px;z-index:9999;' +
			'font-family:Arial,sans-serif;font-size:14px;box-shadow:0 2px 10px rgba(0,0,0,0.2);';
		document.body.appendChild(el);
	}
	el.textContent = msg;
	return true;
}`

	// removeStatusJS removes the overlay if it is present.
	removeStatusJS = `(id) => {
	const el = document.getElementById(id);
	if (el) {
		el.remove();
	}
	return true;
}`
)

// imageInfo is the JSON shape produced by listImagesJS.
type imageInfo struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func toPageImages(infos []imageInfo) []PageImage {
	images := make([]PageImage, len(infos))
	for i, info := range infos {
		images[i] = PageImage{
			Index:  i,
			Src:    info.Src,
			Width:  info.Width,
			Height: info.Height,
		}
	}
	return images
}

// callScript turns a function expression and its arguments into a single
// expression that invokes it.
func callScript(fn string, args ...any) (string, error) {
	encoded := make([]string, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", err
		}
		encoded[i] = string(b)
	}
	return "(" + fn + ")(" + strings.Join(encoded, ", ") + ")", nil
}
