package views

import (
	"html/template"
	"io"
	"zoodash/internal/zooapi"
)

// LoginData feeds the login page; Error is shown inline above the form
// and never leaks backend detail beyond "invalid credentials".
type LoginData struct {
	AppName string
	Error   string
}

type ReportView struct {
	Report zooapi.Report
	PDFURL string
}

type TrayData struct {
	Alerts     []zooapi.Alert
	ScopeAll   bool
	SelectedID string
}

type DashboardData struct {
	AppName        string
	User           *zooapi.User
	Stale          bool
	KPI            *zooapi.KPI
	Animals        []zooapi.Animal
	Selected       *zooapi.Animal
	Current        *zooapi.CurrentBehavior
	PercentBars    template.HTML
	Ribbon         template.HTML
	DeviationChart template.HTML
	Reports        []ReportView
	Tray           TrayData
	RefreshSeconds int
	AlertsSeconds  int
}

func RenderLogin(w io.Writer, data LoginData) error {
	return loginTmpl.Execute(w, data)
}

func RenderDashboard(w io.Writer, data DashboardData) error {
	return dashboardTmpl.Execute(w, data)
}

func RenderChecking(w io.Writer, appName string) error {
	return checkingTmpl.Execute(w, appName)
}

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.AppName}} — login</title>
<style>
body { font-family: -apple-system, sans-serif; background: #f4f6f8; display: flex; justify-content: center; padding-top: 10vh; }
form { background: #fff; padding: 28px 32px; border-radius: 8px; box-shadow: 0 1px 4px rgba(0,0,0,.15); width: 280px; }
h1 { font-size: 17px; margin: 0 0 16px; }
label { display: block; font-size: 12px; color: #555; margin: 10px 0 3px; }
input { width: 100%; padding: 7px 8px; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
button { margin-top: 16px; width: 100%; padding: 8px; background: #1565c0; color: #fff; border: 0; border-radius: 4px; cursor: pointer; }
.error { color: #c62828; font-size: 12px; margin-bottom: 8px; }
</style>
</head>
<body>
<form method="post" action="/login">
  <h1>{{.AppName}}</h1>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <label for="username">Username</label>
  <input id="username" name="username" autocomplete="username" autofocus>
  <label for="password">Password</label>
  <input id="password" name="password" type="password" autocomplete="current-password">
  <button type="submit">Sign in</button>
</form>
</body>
</html>
`))

var checkingTmpl = template.Must(template.New("checking").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="2">
<title>{{.}}</title>
</head>
<body style="font-family: sans-serif; color: #666; padding: 40px;">
Checking backend session…
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.AppName}}{{with .Selected}} — {{.Name}}{{end}}</title>
<style>
body { font-family: -apple-system, sans-serif; margin: 0; background: #f4f6f8; color: #222; }
header { display: flex; align-items: center; gap: 16px; background: #1b2a38; color: #fff; padding: 10px 18px; }
header h1 { font-size: 16px; margin: 0; flex: 1; }
.kpi { font-size: 12px; color: #b8c4ce; }
.stale { background: #ef6c00; color: #fff; font-size: 11px; padding: 2px 8px; border-radius: 10px; }
main { display: flex; gap: 18px; padding: 18px; }
nav { width: 210px; }
nav ul { list-style: none; margin: 0; padding: 0; }
nav a { display: block; padding: 9px 12px; margin-bottom: 4px; background: #fff; border-radius: 6px; text-decoration: none; color: #222; outline-offset: 2px; }
nav a.selected { background: #1565c0; color: #fff; }
section.detail { flex: 1; }
.card { background: #fff; border-radius: 8px; padding: 14px 16px; margin-bottom: 14px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.card h2 { font-size: 13px; color: #555; margin: 0 0 10px; text-transform: uppercase; letter-spacing: .04em; }
.nodata { color: #999; font-size: 13px; }
#tray-button { position: relative; background: none; border: 0; color: #fff; cursor: pointer; font-size: 15px; }
#tray-badge { background: #c62828; border-radius: 9px; font-size: 10px; padding: 1px 5px; margin-left: 2px; }
#tray { display: none; position: absolute; right: 16px; top: 44px; width: 330px; max-height: 420px; overflow-y: auto; background: #fff; color: #222; border-radius: 8px; box-shadow: 0 3px 14px rgba(0,0,0,.25); z-index: 10; }
#tray.open { display: block; }
#tray .tray-head { display: flex; align-items: center; justify-content: space-between; padding: 10px 12px; border-bottom: 1px solid #eee; font-size: 12px; }
#tray ul { list-style: none; margin: 0; padding: 0; }
#tray li { padding: 9px 12px; border-bottom: 1px solid #f2f2f2; font-size: 12px; }
#tray li .sev { font-weight: 600; text-transform: uppercase; font-size: 10px; margin-right: 6px; }
.sev-high { color: #c62828; } .sev-medium { color: #ef6c00; } .sev-low { color: #1565c0; }
#tooltip { display: none; position: fixed; background: #1b2a38; color: #fff; font-size: 11px; padding: 4px 8px; border-radius: 4px; pointer-events: none; z-index: 20; }
table.reports { width: 100%; border-collapse: collapse; font-size: 13px; }
table.reports td, table.reports th { text-align: left; padding: 6px 8px; border-bottom: 1px solid #f0f0f0; }
</style>
</head>
<body>
<header>
  <h1>{{.AppName}}</h1>
  {{if .Stale}}<span class="stale">showing last snapshot</span>{{end}}
  {{with .KPI}}<span class="kpi">uptime {{.UptimeDays}}d · {{.AlertsOpen}} open alerts · {{.Animals}} animals</span>{{end}}
  <button id="tray-button" type="button">Alerts<span id="tray-badge">{{len .Tray.Alerts}}</span></button>
  <span class="kpi">{{with .User}}{{.FullName}}{{end}}</span>
  <form method="post" action="/logout" style="margin:0"><button style="background:none;border:0;color:#b8c4ce;cursor:pointer">Sign out</button></form>
</header>

<div id="tray">
  <div class="tray-head">
    <span>Unread alerts</span>
    <span>
      {{if .Tray.SelectedID}}
      <form method="post" action="/api/alerts/scope" style="display:inline">
        <input type="hidden" name="animal_id" value="{{if .Tray.ScopeAll}}{{.Tray.SelectedID}}{{end}}">
        <button type="submit">{{if .Tray.ScopeAll}}this animal only{{else}}all animals{{end}}</button>
      </form>
      {{end}}
      <form method="post" action="/api/alerts/ack_all" style="display:inline">
        <button type="submit">Mark all read</button>
      </form>
    </span>
  </div>
  <ul id="tray-list">
    {{range .Tray.Alerts}}
    <li><span class="sev sev-{{.Severity}}">{{.Severity}}</span>{{.Type}} — {{.Summary}}
      <form method="post" action="/api/alerts/ack" style="display:inline;float:right">
        <input type="hidden" name="id" value="{{.ID}}">
        <button type="submit">ack</button>
      </form>
    </li>
    {{else}}
    <li class="nodata">Nothing unread</li>
    {{end}}
  </ul>
</div>

<main>
  <nav aria-label="animals">
    <ul id="animal-list">
      {{$sel := .Selected}}
      {{range .Animals}}
      <li><a href="/?id={{.ID}}" {{if and $sel (eq $sel.ID .ID)}}class="selected"{{end}}>{{.Name}}<br><small>{{.Species}}</small></a></li>
      {{else}}
      <li class="nodata">No animals</li>
      {{end}}
    </ul>
  </nav>

  <section class="detail">
    {{if .Selected}}
    <div class="card">
      <h2>Current behavior</h2>
      {{with .Current}}
      <strong>{{.Behavior}}</strong> <small>{{printf "%.0f%% confidence" .ConfidencePct}}</small>
      {{else}}
      <span class="nodata">no data</span>
      {{end}}
    </div>
    <div class="card">
      <h2>Today by category</h2>
      <div id="chart-bars">{{.PercentBars}}</div>
    </div>
    <div class="card">
      <h2>Hour ribbon</h2>
      <div id="chart-ribbon">{{.Ribbon}}</div>
    </div>
    <div class="card">
      <h2>Deviation from baseline, last 7 days</h2>
      <div id="chart-deviation">{{.DeviationChart}}</div>
    </div>
    <div class="card">
      <h2>Reports</h2>
      {{if .Reports}}
      <table class="reports">
        <tr><th>Period start</th><th>Alerts</th><th></th></tr>
        {{range .Reports}}
        <tr><td>{{.Report.PeriodStart}}</td><td>{{.Report.AlertCount}}</td>
            <td><a href="{{.PDFURL}}" target="_blank" rel="noopener">PDF</a></td></tr>
        {{end}}
      </table>
      {{else}}
      <span class="nodata">no reports</span>
      {{end}}
    </div>
    {{else}}
    <div class="card"><span class="nodata">Select an animal</span></div>
    {{end}}
  </section>
</main>

<div id="tooltip"></div>

<script>
(function () {
  var tray = document.getElementById('tray');
  var trayButton = document.getElementById('tray-button');

  trayButton.addEventListener('click', function (e) {
    e.stopPropagation();
    tray.classList.toggle('open');
  });
  document.addEventListener('pointerdown', function (e) {
    if (tray.classList.contains('open') && !tray.contains(e.target) && e.target !== trayButton) {
      tray.classList.remove('open');
    }
  });
  document.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') { tray.classList.remove('open'); }
  });

  // arrow-key navigation over the animal list
  var links = Array.prototype.slice.call(document.querySelectorAll('#animal-list a'));
  document.addEventListener('keydown', function (e) {
    if (e.key !== 'ArrowDown' && e.key !== 'ArrowUp') { return; }
    if (links.length === 0) { return; }
    var idx = links.indexOf(document.activeElement);
    if (idx === -1) { idx = links.findIndex(function (a) { return a.classList.contains('selected'); }); }
    var next = e.key === 'ArrowDown' ? idx + 1 : idx - 1;
    if (next < 0) { next = links.length - 1; }
    if (next >= links.length) { next = 0; }
    links[next].focus();
    e.preventDefault();
  });

  // exact-value tooltip for deviation points
  var tooltip = document.getElementById('tooltip');
  document.addEventListener('pointerover', function (e) {
    var t = e.target;
    if (t.classList && t.classList.contains('dev-point')) {
      tooltip.textContent = t.getAttribute('data-date') + ' ' + t.getAttribute('data-category') + ': ' + t.getAttribute('data-value') + ' pp';
      tooltip.style.left = (e.clientX + 10) + 'px';
      tooltip.style.top = (e.clientY - 10) + 'px';
      tooltip.style.display = 'block';
    }
  });
  document.addEventListener('pointerout', function (e) {
    if (e.target.classList && e.target.classList.contains('dev-point')) {
      tooltip.style.display = 'none';
    }
  });

  function swapChart(id, url) {
    fetch(url, { credentials: 'same-origin' })
      .then(function (r) { return r.ok ? r.text() : null; })
      .then(function (svg) { if (svg) { document.getElementById(id).innerHTML = svg; } })
      .catch(function () {});
  }

  var selected = {{if .Selected}}'{{.Selected.ID}}'{{else}}null{{end}};
  if (selected) {
    setInterval(function () {
      swapChart('chart-bars', '/charts/bars.svg?id=' + selected);
      swapChart('chart-ribbon', '/charts/ribbon.svg?id=' + selected);
      swapChart('chart-deviation', '/charts/deviation.svg?id=' + selected);
    }, {{.RefreshSeconds}} * 1000);
  }

  // tray badge/list refresh on the alerts cadence
  setInterval(function () {
    fetch('/api/alerts', { credentials: 'same-origin' })
      .then(function (r) { return r.ok ? r.json() : null; })
      .then(function (alerts) {
        if (!alerts) { return; }
        var unread = alerts.filter(function (a) { return a.estado === 'open'; });
        document.getElementById('tray-badge').textContent = unread.length;
      })
      .catch(function () {});
  }, {{.AlertsSeconds}} * 1000);
})();
</script>
</body>
</html>
`))
