package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"vehicle-telemetry/models"
	"vehicle-telemetry/utils"
	"vehicle-telemetry/views"
)

// formMemory is how much of a multipart body is held in memory before
// spilling to temp files.
const formMemory = 8 << 20

// UploadController serves the upload form and renders one export per
// POST. Requests are processed one at a time.
type UploadController struct {
	dash      *DashboardController
	maxUpload int64

	mu     sync.Mutex
	served uint64
}

// NewUploadController wires the web form to a dashboard controller.
func NewUploadController(dash *DashboardController, cfg utils.ServerConfig) *UploadController {
	return &UploadController{
		dash:      dash,
		maxUpload: int64(cfg.MaxUploadMB) << 20,
	}
}

// Routes returns the HTTP mux for the web variant.
func (uc *UploadController) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", uc.handleHealth)
	mux.Handle("/", uc)
	return mux
}

// Served returns the number of dashboards rendered so far.
func (uc *UploadController) Served() uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.served
}

func (uc *UploadController) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// ServeHTTP implements http.Handler for "/".
func (uc *UploadController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		uc.writePage(w, http.StatusOK, views.PageData{Kind: KindEV.String()})
	case http.MethodPost:
		uc.handleUpload(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (uc *UploadController) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uc.maxUpload)
	page := views.PageData{Kind: KindEV.String()}

	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		// Not a multipart post at all: plain form, no plot.
		uc.writePage(w, http.StatusOK, page)
		return
	}

	kind := KindEV
	if v := r.FormValue("kind"); v != "" {
		k, err := ParseKind(v)
		if err != nil {
			page.Error = err.Error()
			uc.writePage(w, http.StatusOK, page)
			return
		}
		kind = k
		page.Kind = k.String()
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		// No file chosen: plain form, no plot.
		uc.writePage(w, http.StatusOK, page)
		return
	}
	defer file.Close()
	if hdr.Size == 0 {
		uc.writePage(w, http.StatusOK, page)
		return
	}
	page.FileName = hdr.Filename

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var png bytes.Buffer
	t, err := uc.dash.Render(r.Context(), file, kind, &png)
	if err != nil {
		var se *models.SchemaError
		if errors.As(err, &se) {
			utils.L().Warn("upload %s rejected: %v", hdr.Filename, err)
			page.Error = se.Error()
			uc.writePage(w, http.StatusOK, page)
			return
		}
		utils.L().Error("upload %s failed: %v", hdr.Filename, err)
		http.Error(w, "could not process upload", http.StatusInternalServerError)
		return
	}

	uc.served++
	page.Rows = t.Len()
	page.PlotURL = views.PNGDataURL(png.Bytes())
	utils.L().Info("rendered %s (%s, %d rows, %d bytes png)", hdr.Filename, kind, t.Len(), png.Len())
	uc.writePage(w, http.StatusOK, page)
}

func (uc *UploadController) writePage(w http.ResponseWriter, status int, d views.PageData) {
	var buf bytes.Buffer
	if err := views.RenderPage(&buf, d); err != nil {
		utils.L().Error("render page: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
