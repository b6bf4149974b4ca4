package web

import "net/http"

// PageHandler serves the built-in editor page. It is a single static
// document so the server works without any asset pipeline; the page talks
// to the JSON API with fetch.
func PageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(editorPage))
}

const editorPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Daybook</title>
<style>
  body { font-family: -apple-system, system-ui, sans-serif; margin: 0; background: #f5f5f4; }
  header { display: flex; gap: .5rem; align-items: center; padding: .6rem .8rem; background: #1c1917; color: #fafaf9; }
  header h1 { font-size: 1rem; margin: 0 auto 0 0; font-weight: 600; }
  input[type=date] { border: none; border-radius: 6px; padding: .3rem .5rem; }
  button { border: none; border-radius: 6px; padding: .4rem .8rem; background: #2563eb; color: white; font-weight: 600; }
  button:disabled { opacity: .5; }
  main { padding: .8rem; }
  textarea { width: 100%; min-height: 70vh; box-sizing: border-box; border: 1px solid #d6d3d1;
             border-radius: 8px; padding: .8rem; font: .9rem/1.5 ui-monospace, monospace; resize: vertical; }
  #status { font-size: .8rem; padding: 0 .8rem .8rem; color: #57534e; }
</style>
</head>
<body>
<header>
  <h1>Daybook</h1>
  <input type="date" id="date">
  <button id="new">New</button>
  <button id="save">Save</button>
</header>
<main><textarea id="editor" spellcheck="false"></textarea></main>
<div id="status"></div>
<script>
const editor = document.getElementById('editor');
const dateInput = document.getElementById('date');
const status = document.getElementById('status');
let checksum = '';

function today() { return new Date().toISOString().slice(0, 10); }

async function load() {
  const res = await fetch('/api/entry?date=' + dateInput.value);
  if (res.status === 404) {
    editor.value = '';
    checksum = '';
    status.textContent = 'No entry for this date yet.';
    return;
  }
  if (!res.ok) { status.textContent = 'Load failed.'; return; }
  const entry = await res.json();
  editor.value = entry.content;
  checksum = entry.checksum;
  status.textContent = 'Loaded ' + entry.path;
}

async function save() {
  const res = await fetch('/api/entry', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json', 'If-Match': checksum },
    body: JSON.stringify({ date: dateInput.value, content: editor.value })
  });
  if (res.status === 409) { status.textContent = 'Conflict: entry changed elsewhere. Reload first.'; return; }
  if (!res.ok) { status.textContent = 'Save failed.'; return; }
  const entry = await res.json();
  checksum = entry.checksum;
  status.textContent = 'Saved ' + entry.path;
}

async function create() {
  const res = await fetch('/api/entries', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ date: dateInput.value })
  });
  if (!res.ok) { status.textContent = 'Create failed.'; return; }
  await load();
}

dateInput.value = today();
dateInput.addEventListener('change', load);
document.getElementById('save').addEventListener('click', save);
document.getElementById('new').addEventListener('click', create);
load();
</script>
</body>
</html>
`
