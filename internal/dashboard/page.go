package dashboard

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
	"url": func(s string) template.URL { return template.URL(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en" class="{{.Theme.Mode}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="theme-color" content="{{.Theme.ThemeColor}}">
<title>Weather Forecast</title>
<style>{{css .Theme.CSS}}
body{margin:0;font-family:system-ui,sans-serif;background:hsl(var(--background));color:hsl(var(--foreground))}
.bg{position:fixed;inset:0;background-size:cover;opacity:.3;z-index:-1}
.card{background:hsl(var(--card));color:hsl(var(--card-foreground));border:1px solid hsl(var(--border));border-radius:.75rem;padding:1rem;margin:1rem 0}
.notice{border-color:hsl(var(--primary))}
.error{background:hsl(var(--destructive));color:hsl(var(--destructive-foreground))}
.muted{color:hsl(var(--muted-foreground))}
a{color:hsl(var(--primary))}
a.disabled{pointer-events:none;opacity:.4}
.row{display:flex;gap:.75rem;overflow-x:auto}
.selected{outline:2px solid hsl(var(--ring))}
</style>
</head>
<body>
{{if .Theme.BackgroundImageURL}}<div class="bg" role="img" aria-label="{{.Theme.AccessibilityHint}}" style="background-image:url('{{.Theme.BackgroundImageURL}}')"></div>{{end}}
<main>
<header class="card">
<form method="get" action="/">
<input type="search" name="location" value="{{.Query}}" placeholder="City, ZIP or lat,lon" aria-label="Location">
<input type="date" name="date" value="{{.SelectedDate}}" min="{{.Navigation.MinDate}}" max="{{.Navigation.MaxDate}}" aria-label="Date">
<input type="hidden" name="current" value="{{.SelectedDate}}">
<button type="submit">Go</button>
</form>
<h1>{{.LocationName}}</h1>
<p>{{.DisplayDate}} <span class="muted">{{.CurrentTime}}</span></p>
<nav>
<a href="/?location={{.Query}}&amp;current={{.SelectedDate}}&amp;date={{.Navigation.Previous.Date}}"{{if not .Navigation.Previous.Enabled}} class="disabled" aria-disabled="true"{{end}}>&larr; Previous day</a>
<a href="/?location={{.Query}}&amp;current={{.SelectedDate}}&amp;date={{.Navigation.Next.Date}}"{{if not .Navigation.Next.Enabled}} class="disabled" aria-disabled="true"{{end}}>Next day &rarr;</a>
</nav>
</header>
{{with .Notice}}<section class="card notice" role="status"><strong>{{.Title}}</strong><p>{{.Description}}</p></section>{{end}}
{{with .Error}}<section class="card error" role="alert"><strong>{{.Title}}</strong><p>{{.Description}}</p></section>{{end}}
{{with .Current}}
<section class="card">
<h2>{{.Condition.Text}}</h2>
<p>{{printf "%.1f" .Temperature}}&deg;C <span class="muted">H {{printf "%.1f" .MaxTemp}}&deg; L {{printf "%.1f" .MinTemp}}&deg;</span></p>
<p class="muted">Wind {{printf "%.1f" .WindSpeed}} km/h {{.WindDirection}} &middot; Humidity {{printf "%.0f" .Humidity}}% &middot; UV {{.UVIndex}} &middot; Sunrise {{.SunriseTime}} &middot; Sunset {{.SunsetTime}}</p>
</section>
{{end}}
{{if .Hourly}}
<section class="card"><h2>Hourly</h2><div class="row">
{{range .Hourly}}<div data-icon="{{.Icon}}"><div>{{.Time}}</div><div>{{printf "%.0f" .Temperature}}&deg;</div><div class="muted">{{.Condition.Text}}</div></div>{{end}}
</div></section>
{{end}}
{{if .Daily}}
<section class="card"><h2>Next days</h2><div class="row">
{{range .Daily}}{{if .Selectable}}<a href="/?location={{$.Query}}&amp;current={{$.SelectedDate}}&amp;date={{.Date}}&amp;from=daily"{{if .Selected}} class="selected"{{end}} data-icon="{{.Icon}}">{{else}}<div class="muted" data-icon="{{.Icon}}">{{end}}
<div>{{.DayName}}</div><div>{{printf "%.0f" .MaxTemp}}&deg; / {{printf "%.0f" .MinTemp}}&deg;</div><div class="muted">{{.Condition.Text}}</div>
{{if .Selectable}}</a>{{else}}</div>{{end}}{{end}}
</div></section>
{{end}}
{{if .MapURL}}
<section class="card"><h2>Location &amp; Weather Map</h2>
<iframe title="Weather map for {{.LocationName}}" src="{{url .MapURL}}" width="100%" height="360" loading="lazy"></iframe>
</section>
{{end}}
</main>
</body>
</html>
`))

// Render writes the dashboard page for v.
func Render(w io.Writer, v View) error {
	return pageTemplate.Execute(w, v)
}
