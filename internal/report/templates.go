package report

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.ParseFS(templateFS, "templates/report.html"),
)
