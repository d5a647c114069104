package navigation

import (
	"html/template"
	"io"
)

var sidebarTemplate = template.Must(template.New("sidebar").Parse(`<nav class="sidebar">
{{- range .Sections}}
<div class="menu-box" data-section="{{.Key}}">
<div class="menu-title"><span class="full">{{.Title}}</span><span class="mini">{{.MiniTitle}}</span></div>
{{- if .Loaded}}
{{- range .Items}}
<a class="nav-item{{if .Selected}} selected{{end}}{{if .Ending}} ending{{end}}" href="{{.Href}}">{{.Title}}</a>
{{- end}}
{{- with .Footer}}
{{- if eq .Kind "panel"}}
<div class="statistics">
<span class="passed">{{if .Statistics.Computing}}` + LabelComputing + `{{else}}{{.Statistics.Passed}}{{end}}</span>
<span class="failed">{{if .Statistics.Computing}}` + LabelComputing + `{{else}}{{.Statistics.Failed}}{{end}}</span>
</div>
<div class="takeover"><span>{{.TakeoverLabel}}</span><input type="checkbox" name="takeover"{{if .Takeover.Value}} checked{{end}}></div>
{{- else}}
<div class="checking"><span>` + LabelChecking + `</span></div>
{{- end}}
{{- end}}
{{- else}}
<div class="loading"></div>
{{- end}}
</div>
{{- end}}
</nav>
`))

// Render writes the sidebar as an HTML fragment. Absent sections are not rendered at all.
func Render(w io.Writer, sidebar Sidebar) error {
	var sections []*Section
	for _, s := range []*Section{sidebar.Admin, sidebar.System} {
		if s != nil {
			sections = append(sections, s)
		}
	}
	return sidebarTemplate.Execute(w, struct{ Sections []*Section }{sections})
}
