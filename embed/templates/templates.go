package templates

import _ "embed"

// ReportHTML is the source of the HTML report document.
//
//go:embed report.html.tmpl
var ReportHTML string
