package mail

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"donation_finder/internal/domain/entity"
)

type reportData struct {
	Info      entity.SearchInfo
	Places    []entity.Place
	Generated string
}

func reportFuncs() map[string]any {
	return map[string]any{
		"stars": func(rating float64) string {
			return strings.Repeat("⭐", int(rating))
		},
		"km": func(meters float64) string {
			return fmt.Sprintf("%.1f km", meters/1000)
		},
		"truncate": func(limit int, s string) string {
			if len(s) <= limit {
				return s
			}
			return s[:limit] + "..."
		},
		"take": func(limit int, reviews []entity.Review) []entity.Review {
			if len(reviews) <= limit {
				return reviews
			}
			return reviews[:limit]
		},
		"add1": func(i int) int { return i + 1 },
	}
}

var textReportTemplate = texttemplate.Must( //nolint:gochecknoglobals
	texttemplate.New("report").Funcs(reportFuncs()).Parse(`DONATION OPPORTUNITIES FOUND
Generated: {{.Generated}}

SEARCH DETAILS:
- Search Type: {{.Info.Type}}
- Location: {{.Info.Location}}
- Keywords: {{.Info.KeywordsLine}}
- Results Found: {{len .Places}} organizations

RESULTS:
============================================================

{{range $i, $p := .Places}}{{add1 $i}}. {{$p.Name}}
   Rating: {{if $p.Rating}}{{$p.Rating}} {{stars $p.Rating}}{{else}}No rating{{end}}
   Address: {{$p.Address}}
{{- if $p.Phone}}
   Phone: {{$p.Phone}}{{end}}
{{- if $p.Email}}
   Email: {{$p.Email}}{{end}}
{{- if $p.Website}}
   Website: {{$p.Website}}{{end}}
{{- if $p.DistanceMeters}}
   Distance: {{km $p.DistanceMeters}}{{end}}
{{- if $p.Reviews}}
   Reviews ({{len $p.Reviews}} total):
{{- range take 2 $p.Reviews}}
     - {{.AuthorName}} ({{.Rating}} {{stars .Rating}}): "{{truncate 100 .Text}}" ({{.TimeDescription}})
{{- end}}
{{- end}}
------------------------------------------------------------
{{end}}
This report was generated automatically by the donation finder.
`))

var htmlReportTemplate = htmltemplate.Must( //nolint:gochecknoglobals
	htmltemplate.New("report").Funcs(reportFuncs()).Parse(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.header { background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
.place { background-color: #ffffff; border: 1px solid #ddd; border-radius: 8px; padding: 15px; margin-bottom: 15px; }
.place-name { color: #2c3e50; font-size: 18px; font-weight: bold; margin-bottom: 8px; }
.place-info { color: #666; margin: 5px 0; }
.rating { color: #f39c12; font-weight: bold; }
.email { color: #27ae60; font-weight: bold; }
.review { margin: 10px 0; padding: 8px; background-color: #f8f9fa; border-radius: 4px; }
.footer { margin-top: 30px; padding-top: 20px; border-top: 2px solid #eee; color: #7f8c8d; font-size: 12px; }
</style>
</head>
<body>
<div class="header">
<h2>🎯 Donation Opportunities Found</h2>
<ul>
<li><strong>Search Type:</strong> {{.Info.Type}}</li>
<li><strong>Location:</strong> {{.Info.Location}}</li>
<li><strong>Keywords:</strong> {{.Info.KeywordsLine}}</li>
<li><strong>Results Found:</strong> {{len .Places}} organizations</li>
<li><strong>Generated:</strong> {{.Generated}}</li>
</ul>
</div>
{{range $i, $p := .Places}}<div class="place">
<div class="place-name">{{add1 $i}}. {{$p.Name}}</div>
<div class="place-info rating">⭐ Rating: {{if $p.Rating}}{{$p.Rating}} {{stars $p.Rating}}{{else}}No rating{{end}}</div>
<div class="place-info">📍 {{$p.Address}}</div>
{{if $p.Phone}}<div class="place-info">📞 {{$p.Phone}}</div>{{end}}
{{if $p.Email}}<div class="place-info email">📧 {{$p.Email}}</div>{{end}}
{{if $p.Website}}<div class="place-info">🌐 <a href="{{$p.Website}}">{{$p.Website}}</a></div>{{end}}
{{if $p.DistanceMeters}}<div class="place-info">📏 {{km $p.DistanceMeters}}</div>{{end}}
{{if $p.Reviews}}<div class="reviews"><strong>Recent Reviews:</strong>
{{range take 3 $p.Reviews}}<div class="review"><strong>{{.AuthorName}}</strong> ({{.Rating}} {{stars .Rating}})<br>"{{.Text}}"<br><small>{{.TimeDescription}}</small></div>
{{end}}</div>{{end}}
</div>
{{end}}
<div class="footer">
<p>This report was generated automatically by the donation finder.</p>
</div>
</body>
</html>
`))

func renderReports(places []entity.Place, info entity.SearchInfo, now time.Time) (text, html string, err error) {
	data := reportData{
		Info:      info,
		Places:    places,
		Generated: now.Format("January 2, 2006 at 3:04 PM"),
	}

	var textBuf, htmlBuf strings.Builder

	if err := textReportTemplate.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("text template: %w", err)
	}

	if err := htmlReportTemplate.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("html template: %w", err)
	}

	return textBuf.String(), htmlBuf.String(), nil
}
