package server

import "html/template"

var funcs = template.FuncMap{
	"percent": func(p float64) int { return int(p*100 + 0.5) },
}

var pageTemplate = template.Must(template.New("index.html").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Profile.Name}}</title>
<style>
body { background: #000; color: #fff; font-family: sans-serif; margin: 0; }
.hero { position: relative; height: 100vh; display: flex; flex-direction: column; align-items: center; justify-content: center; overflow: hidden; }
.hero img { position: absolute; inset: 0; width: 100%; height: 100%; object-fit: cover; z-index: 0; }
.hero .name { position: relative; z-index: 1; font-size: 3rem; font-weight: bold; }
.hero .titles { position: relative; z-index: 1; font-size: 1.5rem; color: #aaa; }
main { max-width: 960px; margin: 0 auto; padding: 0 1rem; }
section { padding: 3rem 0; }
.card { background: #1f2937; border-radius: 8px; padding: 1.5rem; margin-bottom: 1rem; }
.bar { background: #374151; border-radius: 9999px; height: 8px; }
.bar div { background: #60a5fa; border-radius: 9999px; height: 8px; }
.badge { display: inline-block; background: #374151; border-radius: 4px; padding: 2px 8px; margin: 2px; font-size: 0.8rem; }
.muted { color: #9ca3af; }
input, textarea { width: 100%; margin-bottom: 0.5rem; background: #111; color: #fff; border: 1px solid #374151; padding: 0.5rem; }
</style>
</head>
<body>
<div class="hero">
  <img src="{{.FieldURL}}" alt="">
  <div class="name">{{.Profile.Name}}</div>
  <div class="titles">{{range $i, $t := .Profile.Titles}}{{if $i}} · {{end}}{{$t}}{{end}}</div>
</div>
<main>
<section>
  <h2>About Me</h2>
  {{range .Profile.About}}<p class="muted">{{.}}</p>{{end}}
</section>
<section>
  <h2>Experience</h2>
  {{range .Profile.Experience}}
  <div class="card">
    <h3>{{.Title}}</h3>
    <h4>{{.Company}} <span class="muted">{{.Timeframe}}</span></h4>
    <p>{{.Description}}</p>
    {{range .Skills}}<span class="badge">{{.}}</span>{{end}}
  </div>
  {{end}}
</section>
<section>
  <h2>Skills</h2>
  {{range .Profile.Skills}}
  <div class="card">
    <h3>{{.Name}}</h3>
    <div class="bar"><div style="width: {{percent .Proficiency}}%"></div></div>
    <p>Proficiency: {{percent .Proficiency}}%</p>
  </div>
  {{end}}
</section>
<section>
  <h2>Projects</h2>
  {{range .Profile.Projects}}
  <div class="card">
    <h3>{{.Title}}</h3>
    <p class="muted">{{.Description}}</p>
    {{range .TechStack}}<span class="badge">{{.}}</span>{{end}}
    <p><a href="{{.DemoLink}}">View Demo</a></p>
  </div>
  {{end}}
</section>
<section>
  <h2>Education</h2>
  {{range .Profile.Education}}
  <div class="card">
    <h3>{{.Degree}}</h3>
    <p class="muted">{{.University}} | {{.Timeframe}}</p>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </div>
  {{end}}
</section>
<section>
  <h2>Contact Information</h2>
  {{with .Profile.Contact}}
  <p>Email: <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  {{if .Phone}}<p>Phone: {{.Phone}}</p>{{end}}
  {{if .LinkedIn}}<p><a href="{{.LinkedIn}}">LinkedIn</a></p>{{end}}
  {{if .GitHub}}<p><a href="{{.GitHub}}">GitHub</a></p>{{end}}
  {{end}}
  <form method="post" action="/api/contact">
    <input name="name" placeholder="Name">
    <input name="email" placeholder="Email">
    <textarea name="message" placeholder="Message"></textarea>
    <button type="submit">Send</button>
  </form>
</section>
</main>
</body>
</html>
`))
