package views

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageData feeds the upload form template.
type PageData struct {
	Kind     string
	Error    string
	FileName string
	Rows     int
	PlotURL  template.URL // data:image/png;base64,… or empty
}

// PNGDataURL encodes a PNG for inline display.
func PNGDataURL(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

// RenderPage writes the upload form, with a plot if d.PlotURL is set.
func RenderPage(w io.Writer, d PageData) error {
	return pageTmpl.ExecuteTemplate(w, "index.html", d)
}
