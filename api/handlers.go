package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/qrforge/api/middleware"
	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/domain/codegen"
	"github.com/prasetyowira/qrforge/infrastructure/analytics"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
	"github.com/prasetyowira/qrforge/infrastructure/render"
)

// maxUploadBytes caps multipart form memory for logo uploads
const maxUploadBytes = 8 << 20

// Service is the domain surface the handlers depend on
type Service interface {
	Generate(ctx context.Context, in codegen.GenerateInput) (*codegen.Artifact, error)
	GetArtifact(ctx context.Context, id string) (*codegen.Artifact, error)
	TrackScan(ctx context.Context, id, ip, userAgent string) error
	RecordLogin(ctx context.Context, username, ip, userAgent string)
	LoginAttempts(ctx context.Context, limit int) ([]analytics.Event, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	service Service
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Home serves the landing page with the generation forms
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(r.Context(), w, homeTemplate, nil, http.StatusOK, constant.CtxHome)
}

// Docs serves the endpoint documentation page
func (h *Handler) Docs(w http.ResponseWriter, r *http.Request) {
	renderPage(r.Context(), w, docsTemplate, nil, http.StatusOK, constant.CtxDocs)
}

// GenerateQRPage handles the browser QR form flow: generate, persist and show
// the result inline
func (h *Handler) GenerateQRPage(w http.ResponseWriter, r *http.Request) {
	h.generatePage(w, r, render.SymbologyQR, constant.CtxGenerateQRPage)
}

// GenerateBarcodePage handles the browser barcode form flow
func (h *Handler) GenerateBarcodePage(w http.ResponseWriter, r *http.Request) {
	h.generatePage(w, r, render.SymbologyBarcode, constant.CtxGenerateBarcodePage)
}

// generatePage is the shared browser form flow, rendering a confirmation view
// on success. Unlike the API flow, a persistence failure is a failed request
// here: the page's point is the durable link.
func (h *Handler) generatePage(w http.ResponseWriter, r *http.Request, symbology render.Symbology, ctxFunction string) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingGenerate, appLogger.LoggerInfo{
		ContextFunction: ctxFunction,
		Data: map[string]interface{}{
			constant.DataSymbology: string(symbology),
		},
	})

	in, err := h.generateInput(r, symbology)
	if err != nil {
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	artifact, err := h.service.Generate(ctx, in)
	if err != nil {
		if isValidationError(err) {
			renderPage(ctx, w, errorTemplate, errorView{Message: err.Error()}, http.StatusBadRequest, ctxFunction)
			return
		}

		appLogger.CtxError(ctx, "Error generating code", appLogger.LoggerInfo{
			ContextFunction: ctxFunction,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: string(symbology),
			},
		})

		renderPage(ctx, w, errorTemplate, errorView{Message: "Failed to generate code"}, http.StatusInternalServerError, ctxFunction)
		return
	}

	renderPage(ctx, w, resultTemplate, newResultView(artifact), http.StatusOK, ctxFunction)
}

// APIGenerateQR handles QR generation and returns the PNG bytes
func (h *Handler) APIGenerateQR(w http.ResponseWriter, r *http.Request) {
	h.generateImage(w, r, render.SymbologyQR, constant.CtxAPIGenerateQR)
}

// APIGenerateBarcode handles Code 128 generation and returns the PNG bytes
func (h *Handler) APIGenerateBarcode(w http.ResponseWriter, r *http.Request) {
	h.generateImage(w, r, render.SymbologyBarcode, constant.CtxAPIGenerateBarcode)
}

// APIGenerateWifiQR handles Wi-Fi QR generation and returns the PNG bytes
func (h *Handler) APIGenerateWifiQR(w http.ResponseWriter, r *http.Request) {
	h.generateImage(w, r, render.SymbologyWifiQR, constant.CtxAPIGenerateWifiQR)
}

// generateImage is the shared API generation flow. A persisted identifier is
// reported in a header; the body is always the image itself. When persistence
// fails but the image was produced, the caller still gets the image.
func (h *Handler) generateImage(w http.ResponseWriter, r *http.Request, symbology render.Symbology, ctxFunction string) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingGenerate, appLogger.LoggerInfo{
		ContextFunction: ctxFunction,
		Data: map[string]interface{}{
			constant.DataSymbology: string(symbology),
		},
	})

	in, err := h.generateInput(r, symbology)
	if err != nil {
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	artifact, err := h.service.Generate(ctx, in)
	if err != nil {
		if isValidationError(err) {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		appLogger.CtxError(ctx, "Error generating code", appLogger.LoggerInfo{
			ContextFunction: ctxFunction,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: string(symbology),
			},
		})

		if artifact == nil {
			WriteJSONError(w, "Failed to generate code", http.StatusInternalServerError)
			return
		}
		// Image exists but was not persisted; serve it anyway
	}

	appLogger.CtxInfo(ctx, "Generated code successfully", appLogger.LoggerInfo{
		ContextFunction: ctxFunction,
		Data: map[string]interface{}{
			constant.DataArtifactID: artifact.ID,
			constant.DataSymbology:  string(symbology),
		},
	})

	WritePNG(w, artifact)
}

// generateInput builds a GenerateInput from the request form. Multipart is
// preferred so logo uploads work; plain form encodings still parse.
func (h *Handler) generateInput(r *http.Request, symbology render.Symbology) (codegen.GenerateInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			return codegen.GenerateInput{}, err
		}
	}

	in := codegen.GenerateInput{
		Payload:     r.FormValue(constant.FormFieldData),
		Symbology:   symbology,
		SSID:        r.FormValue(constant.FormFieldSSID),
		Password:    r.FormValue(constant.FormFieldPassword),
		Security:    r.FormValue(constant.FormFieldSecurity),
		LogoRef:     r.FormValue(constant.FormFieldLogo),
		RequesterIP: middleware.ClientIP(r),
		UserAgent:   r.UserAgent(),
	}

	if file, _, err := r.FormFile(constant.FormFieldLogoFile); err == nil {
		upload, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		file.Close()
		if readErr == nil {
			in.LogoUpload = upload
		}
	}

	return in, nil
}

// ViewArtifact serves the HTML page for a stored artifact
func (h *Handler) ViewArtifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	artifactID := chi.URLParam(r, "artifactID")

	appLogger.CtxDebug(ctx, constant.MsgHandlingRetrieve, appLogger.LoggerInfo{
		ContextFunction: constant.CtxViewArtifact,
		Data: map[string]interface{}{
			constant.DataArtifactID: artifactID,
		},
	})

	artifact, err := h.service.GetArtifact(ctx, artifactID)
	if err != nil {
		if err.Error() == constant.ErrArtifactNotFound {
			renderPage(ctx, w, notFoundTemplate, nil, http.StatusNotFound, constant.CtxViewArtifact)
			return
		}

		appLogger.CtxError(ctx, "Error retrieving artifact", appLogger.LoggerInfo{
			ContextFunction: constant.CtxViewArtifact,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: artifactID,
			},
		})

		renderPage(ctx, w, errorTemplate, errorView{Message: "Error retrieving artifact"}, http.StatusInternalServerError, constant.CtxViewArtifact)
		return
	}

	renderPage(ctx, w, artifactTemplate, newResultView(artifact), http.StatusOK, constant.CtxViewArtifact)
}

// ArtifactImage serves the stored PNG for an artifact
func (h *Handler) ArtifactImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	artifactID := chi.URLParam(r, "artifactID")

	appLogger.CtxDebug(ctx, constant.MsgHandlingRetrieve, appLogger.LoggerInfo{
		ContextFunction: constant.CtxArtifactImage,
		Data: map[string]interface{}{
			constant.DataArtifactID: artifactID,
		},
	})

	artifact, err := h.service.GetArtifact(ctx, artifactID)
	if err != nil {
		if err.Error() == constant.ErrArtifactNotFound {
			http.NotFound(w, r)
			return
		}

		appLogger.CtxError(ctx, "Error retrieving artifact image", appLogger.LoggerInfo{
			ContextFunction: constant.CtxArtifactImage,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: artifactID,
			},
		})

		WriteJSONError(w, "Error retrieving artifact", http.StatusInternalServerError)
		return
	}

	WritePNG(w, artifact)
}

// ScanArtifact records a scan event and bounces the scanner to the home page
func (h *Handler) ScanArtifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	artifactID := chi.URLParam(r, "artifactID")

	appLogger.CtxDebug(ctx, constant.MsgHandlingScan, appLogger.LoggerInfo{
		ContextFunction: constant.CtxScanArtifact,
		Data: map[string]interface{}{
			constant.DataArtifactID: artifactID,
		},
	})

	err := h.service.TrackScan(ctx, artifactID, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		if err.Error() == constant.ErrArtifactNotFound {
			http.NotFound(w, r)
			return
		}

		appLogger.CtxError(ctx, "Error tracking scan", appLogger.LoggerInfo{
			ContextFunction: constant.CtxScanArtifact,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: artifactID,
			},
		})

		WriteJSONError(w, "Error tracking scan", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, constant.RouteHome, http.StatusFound)
}

// AdminLogin records a login attempt and forwards to the dashboard. Only the
// username travels into the event log.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		appLogger.CtxError(ctx, "Error parsing login form", appLogger.LoggerInfo{
			ContextFunction: constant.CtxAdminLogin,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIParseForm,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	username := r.FormValue(constant.FormFieldUsername)
	h.service.RecordLogin(ctx, username, middleware.ClientIP(r), r.UserAgent())

	http.Redirect(w, r, constant.RouteAdminDashboard, http.StatusFound)
}

// AdminDashboard lists recent login attempts, newest first
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	attempts, err := h.service.LoginAttempts(ctx, dashboardLimit)
	if err != nil {
		appLogger.CtxError(ctx, "Error loading login attempts", appLogger.LoggerInfo{
			ContextFunction: constant.CtxAdminDashboard,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		renderPage(ctx, w, errorTemplate, errorView{Message: "Error loading dashboard"}, http.StatusInternalServerError, constant.CtxAdminDashboard)
		return
	}

	renderPage(ctx, w, dashboardTemplate, dashboardView{Attempts: attempts}, http.StatusOK, constant.CtxAdminDashboard)
}

// isValidationError reports whether err is a request problem rather than a
// server-side failure
func isValidationError(err error) bool {
	switch err.Error() {
	case constant.ErrEmptyPayload,
		constant.ErrEmptySSID,
		constant.ErrEmptyPassword,
		constant.ErrUnknownSymbology,
		constant.ErrUnsupportedPayload:
		return true
	}
	return false
}

// WritePNG writes artifact image bytes with the identifier echoed in a header
func WritePNG(w http.ResponseWriter, artifact *codegen.Artifact) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Artifact-ID", artifact.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
