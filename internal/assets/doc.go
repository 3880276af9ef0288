// Package assets provides the embedded page templates and plugin stylesheets.
//
// # Directory Structure
//
//	styles/
//	└── {name}.css      # stylesheet requested by a content plugin
//	templates/
//	├── page.html       # default HTML page template
//	└── page.tex        # default LaTeX document template
//
// Templates carry a single "{content}" placeholder that receives the
// assembled page. The HTML template also has a </head> tag so that plugin
// stylesheets can be injected.
//
// # Security
//
// Asset names are validated to prevent path traversal.
package assets
