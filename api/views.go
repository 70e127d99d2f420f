package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"

	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/domain/codegen"
	"github.com/prasetyowira/qrforge/infrastructure/analytics"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

// dashboardLimit bounds how many login attempts the dashboard shows
const dashboardLimit = 100

// resultView backs the result and artifact pages
type resultView struct {
	ID       string
	ImageSrc template.URL
	ViewPath string
	ScanPath string
}

// errorView backs the error page
type errorView struct {
	Message string
}

// dashboardView backs the admin dashboard
type dashboardView struct {
	Attempts []analytics.Event
}

// newResultView embeds the PNG as a data URI so the page needs no second
// round trip
func newResultView(artifact *codegen.Artifact) resultView {
	return resultView{
		ID:       artifact.ID,
		ImageSrc: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(artifact.Data)),
		ViewPath: fmt.Sprintf("/qr/%s", artifact.ID),
		ScanPath: fmt.Sprintf("/qr/%s/scan", artifact.ID),
	}
}

// renderPage executes a template and logs failures; by the time execution
// fails the status line has already been written, so the error is log-only
func renderPage(ctx context.Context, w http.ResponseWriter, tmpl *template.Template, data interface{}, statusCode int, ctxFunction string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := tmpl.Execute(w, data); err != nil {
		appLogger.CtxError(ctx, "Error rendering page", appLogger.LoggerInfo{
			ContextFunction: ctxFunction,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
	}
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge</title></head>
<body>
<h1>QRForge</h1>
<h2>QR Code</h2>
<form action="/generate-qr" method="post" enctype="multipart/form-data">
  <input type="text" name="data" placeholder="Text or URL" required>
  <input type="text" name="logo" placeholder="Logo URL or base64 (optional)">
  <input type="file" name="logo_file">
  <button type="submit">Generate QR</button>
</form>
<h2>Barcode (Code 128)</h2>
<form action="/generate-barcode" method="post">
  <input type="text" name="data" placeholder="Text" required>
  <button type="submit">Generate Barcode</button>
</form>
<h2>Wi-Fi QR</h2>
<form action="/api/generate-wifi-qr" method="post">
  <input type="text" name="ssid" placeholder="Network name" required>
  <input type="password" name="password" placeholder="Password" required>
  <select name="security">
    <option value="WPA">WPA/WPA2</option>
    <option value="WEP">WEP</option>
    <option value="nopass">Open</option>
  </select>
  <button type="submit">Generate Wi-Fi QR</button>
</form>
</body>
</html>
`))

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge - Documentation</title></head>
<body>
<h1>API documentation</h1>
<table border="1">
  <tr><th>Method</th><th>Path</th><th>Fields</th><th>Returns</th></tr>
  <tr><td>POST</td><td>/api/generate-qr</td><td>data, logo, logo_file</td><td>PNG image</td></tr>
  <tr><td>POST</td><td>/api/generate-barcode</td><td>data</td><td>PNG image</td></tr>
  <tr><td>POST</td><td>/api/generate-wifi-qr</td><td>ssid, password, security</td><td>PNG image</td></tr>
  <tr><td>GET</td><td>/qr/{id}</td><td></td><td>HTML page</td></tr>
  <tr><td>GET</td><td>/qr/{id}/image</td><td></td><td>PNG image</td></tr>
  <tr><td>GET</td><td>/qr/{id}/scan</td><td></td><td>Redirect</td></tr>
</table>
<p>Generation endpoints are limited per client per day. The identifier of a
persisted image is echoed in the X-Artifact-ID response header.</p>
<p><a href="/">Back to home</a></p>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge - Result</title></head>
<body>
<h1>Your code is ready</h1>
<img src="{{.ImageSrc}}" alt="generated code">
<p>Permanent link: <a href="{{.ViewPath}}">{{.ID}}</a></p>
<p><a href="/">Generate another</a></p>
</body>
</html>
`))

var artifactTemplate = template.Must(template.New("artifact").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge - {{.ID}}</title></head>
<body>
<h1>Stored code</h1>
<img src="/qr/{{.ID}}/image" alt="stored code">
<p>Identifier: {{.ID}}</p>
<p><a href="/">Generate another</a></p>
</body>
</html>
`))

var notFoundTemplate = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge - Not Found</title></head>
<body>
<h1>Not found</h1>
<p>No code exists under that identifier.</p>
<p><a href="/">Back to home</a></p>
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge - Error</title></head>
<body>
<h1>Something went wrong</h1>
<p>{{.Message}}</p>
<p><a href="/">Back to home</a></p>
</body>
</html>
`))

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>QRForge - Admin</title></head>
<body>
<h1>Login attempts</h1>
<table border="1">
  <tr><th>Time</th><th>Username</th><th>IP</th><th>User agent</th></tr>
  {{range .Attempts}}
  <tr><td>{{.Timestamp}}</td><td>{{.Username}}</td><td>{{.IP}}</td><td>{{.UserAgent}}</td></tr>
  {{end}}
</table>
<p><a href="/">Back to home</a></p>
</body>
</html>
`))
