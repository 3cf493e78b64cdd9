package statushttp

import "html/template"

var pageTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
<title>func-wander</title>
<style>
body { font-family: monospace; margin: 2em; background: #111; color: #ddd; }
.bar { width: 100%; background: #333; border-radius: 4px; height: 1.4em; }
.bar > div { background: #4a8; height: 100%; border-radius: 4px; }
table { border-collapse: collapse; margin-top: 1em; }
th, td { border: 1px solid #444; padding: 0.3em 0.7em; text-align: left; }
button { background: #a44; color: #fff; border: none; padding: 0.5em 1.5em; border-radius: 4px; cursor: pointer; }
.done { color: #4a8; }
</style>
</head>
<body>
<h1>func-wander</h1>
{{if .Status.Done}}<p class="done">search finished: space exhausted</p>{{end}}
<div class="bar"><div style="width: {{printf "%.4f" .Status.Progress}}%"></div></div>
<p>progress {{printf "%.4f" .Status.Progress}}%, serial {{.Status.SerialNumber}} of {{.Status.MaxSerialNumber}}</p>
<p>iterations {{.Status.Iterations}} ({{printf "%.0f" .Status.Rate}}/s), elapsed {{.Elapsed}}, remaining {{.Remaining}}</p>
<p>current: {{.Status.Current}}</p>
{{if .Status.Best}}
<table>
<tr><th>dist</th><th>lvl</th><th>fnc</th><th>fnu</th><th>function</th><th>matches</th></tr>
{{range .Status.Best}}
<tr>
<td>{{.Suitability.Distance}}</td>
<td>{{.Suitability.MaxLevel}}</td>
<td>{{.Suitability.FunctionsCount}}</td>
<td>{{.Suitability.FunctionsUnique}}</td>
<td>{{.Function}}</td>
<td>{{.Matches}}</td>
</tr>
{{end}}
</table>
{{end}}
<form method="post" action="/stop"><button type="submit">stop search</button></form>
</body>
</html>
`))
