package dashboard

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleMapPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(mapHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>LUCAS Survey Point Classification</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 52rem; color: #222; }
h1 { background: #1b6ba2; color: #fff; padding: .6rem 1rem; font-size: 1.4rem; }
section { margin: 1.5rem 0; }
a { color: #1b6ba2; }
form { border: 1px dashed #999; border-radius: 4px; padding: 1rem; }
#result { white-space: pre-wrap; font-family: monospace; }
</style>
</head>
<body>
<h1>LUCAS Survey Point Classification</h1>
<section>
Classifies LUCAS survey points into Livestock, Arable, Forest, Shrubland and
Grassland following den Herder et al. (2017), and aggregates per-country
counts and percentages. Upload a yearly Eurostat extract (CSV or XLSX) to
merge it into the running dataset.
</section>
<section>
<form id="upload">
  <input type="file" name="file" required>
  <input type="number" name="year" placeholder="survey year (optional)" min="2006" max="2100">
  <button type="submit">Upload</button>
</form>
<div id="result"></div>
</section>
<section>
<ul>
  <li><a href="/map">Point map</a></li>
  <li><a href="/charts/summary">Stacked classification chart</a></li>
  <li><a href="/export/points.csv">Export classified points (CSV)</a></li>
  <li><a href="/export/summaries.csv">Export country summaries (CSV)</a></li>
</ul>
</section>
<section style="font-size:.85rem;color:#555">
Data source: Eurostat LUCAS Point Survey. Classification scheme: den Herder
et al. (2017), Current extent and stratification of agroforestry in the
European Union.
</section>
<script>
document.getElementById('upload').addEventListener('submit', async (e) => {
  e.preventDefault();
  const body = new FormData(e.target);
  if (!body.get('year')) body.delete('year');
  const out = document.getElementById('result');
  out.textContent = 'processing…';
  const resp = await fetch('/api/upload', { method: 'POST', body });
  out.textContent = JSON.stringify(await resp.json(), null, 2);
});
</script>
</body>
</html>
`

const mapHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>LUCAS Point Map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.legend { background: #fff; padding: .5rem .8rem; border-radius: 4px; line-height: 1.5; }
.legend i { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 6px; }
</style>
</head>
<body>
<div id="map"></div>
<script>
const map = L.map('map').setView([48.23610, 21.22574], 4);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

fetch('/api/points.geojson' + window.location.search)
  .then(r => r.json())
  .then(fc => {
    L.geoJSON(fc, {
      pointToLayer: (f, latlng) => L.circleMarker(latlng, {
        radius: 4, weight: 0, fillOpacity: 0.8, fillColor: f.properties.color
      }).bindPopup(
        '<b>' + f.properties.class + '</b><br>' +
        'Landcover 1: ' + f.properties.lc1 + '<br>' +
        'Landcover 2: ' + (f.properties.class === 'Arable' ? f.properties.lc2 : '') + '<br>' +
        'Land management: ' + f.properties.landMngt + '<br>' +
        f.properties.countryYear
      )
    }).addTo(map);
  });

const legend = L.control({position: 'bottomright'});
legend.onAdd = () => {
  const div = L.DomUtil.create('div', 'legend');
  const colors = {"Livestock": "#1b6ba2", "Arable": "#b98c1b", "Forest": "#006400",
                  "Shrubland": "#a0522d", "Grassland": "#8fbc8f"};
  div.innerHTML = Object.entries(colors)
    .map(([k, c]) => '<i style="background:' + c + '"></i>' + k)
    .join('<br>');
  return div;
};
legend.addTo(map);
</script>
</body>
</html>
`
