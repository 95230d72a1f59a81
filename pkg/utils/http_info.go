package utils

import (
	"html/template"
	"net/http"

	"github.com/eirsyl/shardadvisor/pkg"
	log "github.com/sirupsen/logrus"
)

var buildInfoTemplate = template.Must(template.New("buildInfo").Parse(`
<h2>shardadvisor</h2>
<p>{{.Version}} <i>{{.BuildDate}}</i></p>
<table style="border: 1px solid;">
<tr>
<th>Name</th>
<th>Value</th>
</tr>
{{ range $key, $value := .BuildInfo }}
<tr>
<td>{{ $key }}</td>
<td>{{ $value }}</td>
</tr>
{{ end }}
</table>
<ul>
{{ range .Links }}<li><a href="{{ . }}">{{ . }}</a></li>
{{ end }}
</ul>
`))

type buildPage struct {
	Version   string
	BuildDate string
	BuildInfo map[string]string
	Links     []string
}

// BuildInformationHandler returns a http site containing information about
// the running advisor and links to the debug endpoints.
func BuildInformationHandler(info map[string]string, links ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")

		page := buildPage{
			Version:   pkg.Version,
			BuildDate: pkg.BuildDate,
			BuildInfo: info,
			Links:     links,
		}

		if err := buildInfoTemplate.Execute(w, page); err != nil {
			log.Warnf("Could not render build info page: %v", err)
		}
	}
}
