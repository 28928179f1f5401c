// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>CORD-19 Data Explorer</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; font-size: 0.9rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f2f2f2; }
img { max-width: 100%; margin: 1rem 0; }
.muted { color: #777; }
</style>
</head>
<body>
<h1>CORD-19 Data Explorer</h1>
<p>Simple exploration of COVID-19 research papers.</p>

<form method="get" action="/">
  <label>From <input type="number" name="from" value="{{.Range.From}}" min="{{.Bounds.From}}" max="{{.Bounds.To}}" onchange="this.form.submit()"></label>
  <label>To <input type="number" name="to" value="{{.Range.To}}" min="{{.Bounds.From}}" max="{{.Bounds.To}}" onchange="this.form.submit()"></label>
  <noscript><button type="submit">Apply</button></noscript>
</form>

<h2>Sample Data</h2>
<p class="muted">{{.Rows}} papers published {{.Range.From}}&ndash;{{.Range.To}}</p>
{{if .Preview}}
<table>
  <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
  {{range .Preview}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
  {{end}}
</table>
{{else}}
<p class="muted">No papers in this range.</p>
{{end}}

<h2>Publications by Year</h2>
{{if .YearChart}}<img src="{{.YearChart}}" alt="Publications by year">{{end}}

<h2>Top Journals</h2>
{{if .JournalChart}}<img src="{{.JournalChart}}" alt="Top journals">{{end}}

<h2>Word Cloud of Paper Titles</h2>
{{if .WordCloud}}<img src="{{.WordCloud}}" alt="Title word cloud">{{else}}<p class="muted">No title words to show.</p>{{end}}
</body>
</html>
`
