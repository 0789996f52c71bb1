package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the operator page.
type DashboardHandler struct{}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Page serves the dashboard HTML. All data is fetched from /api/status and
// /api/run by the page itself.
func (h *DashboardHandler) Page(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, dashboardHTML)
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Daily Reel</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #020617;
            color: #e2e8f0;
            min-height: 100vh;
            padding: 3rem 1.5rem;
        }
        .container { max-width: 880px; margin: 0 auto; }
        header { margin-bottom: 2rem; }
        .eyebrow { font-size: 0.75rem; letter-spacing: 0.08em; text-transform: uppercase; color: #94a3b8; }
        h1 { font-size: 2.2rem; color: #fff; margin: 0.4rem 0; }
        .lead { color: #cbd5e1; max-width: 640px; }
        .card {
            background: rgba(15, 23, 42, 0.8);
            border: 1px solid rgba(255, 255, 255, 0.08);
            border-radius: 16px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        h2 { font-size: 1.1rem; color: #fff; margin-bottom: 1rem; }
        .badge { display: inline-block; padding: 0.2rem 0.7rem; border-radius: 999px; font-size: 0.8rem; }
        .ok { background: rgba(16, 185, 129, 0.15); color: #6ee7b7; }
        .bad { background: rgba(244, 63, 94, 0.15); color: #fda4af; }
        ul.issues { margin: 0.8rem 0 0 1.2rem; color: #fda4af; font-size: 0.9rem; }
        table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
        th, td { text-align: left; padding: 0.5rem; border-bottom: 1px solid rgba(255, 255, 255, 0.06); }
        th { color: #94a3b8; font-weight: 500; }
        .muted { color: #64748b; font-size: 0.85rem; }
        input[type="password"] {
            width: 100%;
            padding: 0.6rem 0.8rem;
            border-radius: 8px;
            border: 1px solid rgba(255, 255, 255, 0.15);
            background: #0f172a;
            color: #e2e8f0;
            margin-bottom: 1rem;
        }
        button {
            padding: 0.65rem 1.4rem;
            border: none;
            border-radius: 999px;
            background: #6366f1;
            color: #fff;
            font-size: 0.9rem;
            cursor: pointer;
        }
        button:disabled { background: #475569; cursor: not-allowed; }
        .result { margin-top: 1rem; padding: 1rem; border-radius: 12px; font-size: 0.9rem; display: none; }
        .result.uploaded { display: block; background: rgba(16, 185, 129, 0.1); border: 1px solid rgba(16, 185, 129, 0.2); }
        .result.skipped { display: block; background: rgba(245, 158, 11, 0.1); border: 1px solid rgba(245, 158, 11, 0.2); }
        .result.error { display: block; background: rgba(244, 63, 94, 0.1); border: 1px solid rgba(244, 63, 94, 0.3); }
        .logs { margin-top: 0.8rem; background: rgba(0, 0, 0, 0.25); border-radius: 8px; padding: 0.8rem; font-size: 0.8rem; }
        .log-meta { font-family: monospace; color: #94a3b8; font-size: 0.72rem; margin-top: 0.5rem; }
        pre { background: rgba(0, 0, 0, 0.5); padding: 0.5rem; border-radius: 6px; margin-top: 0.3rem; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <span class="eyebrow">Autonomous Ops</span>
            <h1>Drive to YouTube Daily Uploader</h1>
            <p class="lead">Pulls the oldest pending video from the watched folder, prepares its metadata and publishes it to YouTube.</p>
        </header>

        <div class="card">
            <h2>Status</h2>
            <div id="envStatus" class="muted">Loading...</div>
            <ul id="envIssues" class="issues"></ul>
            <p id="checkedAt" class="muted" style="margin-top: 0.8rem;"></p>
        </div>

        <div class="card">
            <h2>Manual trigger</h2>
            <input type="password" id="token" placeholder="Bearer token (leave empty if auth is disabled)">
            <button id="triggerBtn" disabled>Trigger Upload Now</button>
            <div id="result" class="result"></div>
        </div>

        <div class="card">
            <h2>Pending videos</h2>
            <div id="pending" class="muted">Loading...</div>
        </div>
    </div>

    <script>
        const tokenInput = document.getElementById('token');
        const triggerBtn = document.getElementById('triggerBtn');
        const resultDiv = document.getElementById('result');

        tokenInput.value = localStorage.getItem('dailyreel_token') || '';

        function el(tag, text, className) {
            const node = document.createElement(tag);
            if (text !== undefined) node.textContent = text;
            if (className) node.className = className;
            return node;
        }

        function renderStatus(status) {
            const env = document.getElementById('envStatus');
            env.textContent = '';
            env.appendChild(el('span', status.envOk ? 'Ready' : 'Needs attention', 'badge ' + (status.envOk ? 'ok' : 'bad')));

            const issues = document.getElementById('envIssues');
            issues.textContent = '';
            (status.envIssues || []).forEach(issue => issues.appendChild(el('li', issue)));

            document.getElementById('checkedAt').textContent = 'Checked ' + new Date(status.timestamp).toLocaleString();
            triggerBtn.disabled = !status.envOk;

            const pending = document.getElementById('pending');
            pending.textContent = '';
            const videos = status.pendingVideos || [];
            if (videos.length === 0) {
                pending.appendChild(el('p', 'No pending videos.', 'muted'));
                return;
            }
            const table = el('table');
            const head = el('tr');
            ['Name', 'Created', 'Size'].forEach(h => head.appendChild(el('th', h)));
            table.appendChild(head);
            videos.forEach(v => {
                const row = el('tr');
                row.appendChild(el('td', v.name));
                row.appendChild(el('td', v.createdTime ? new Date(v.createdTime).toLocaleString() : '-'));
                row.appendChild(el('td', v.size || '-'));
                table.appendChild(row);
            });
            pending.appendChild(table);
        }

        function renderLogs(logs) {
            const box = el('div', undefined, 'logs');
            (logs || []).forEach(entry => {
                box.appendChild(el('div', new Date(entry.timestamp).toLocaleTimeString() + ' · ' + entry.level, 'log-meta'));
                box.appendChild(el('div', entry.message));
                if (entry.details) box.appendChild(el('pre', JSON.stringify(entry.details, null, 2)));
            });
            return box;
        }

        function renderResult(data) {
            resultDiv.textContent = '';
            if (data.status === 'uploaded') {
                resultDiv.className = 'result uploaded';
                resultDiv.appendChild(el('p', 'Uploaded successfully' + (data.videoId ? ' -> ' + data.videoId : '')));
                resultDiv.appendChild(el('p', 'Title: ' + data.title));
                resultDiv.appendChild(el('p', 'Metadata source: ' + (data.metadataSource === 'ai' ? 'AI generated' : 'Template')));
            } else if (data.status === 'skipped') {
                resultDiv.className = 'result skipped';
                resultDiv.appendChild(el('p', 'Run skipped'));
                resultDiv.appendChild(el('p', data.reason));
            } else {
                resultDiv.className = 'result error';
                resultDiv.appendChild(el('p', data.error || 'Manual trigger failed unexpectedly'));
                return;
            }
            if (data.logs && data.logs.length > 0) resultDiv.appendChild(renderLogs(data.logs));
        }

        async function loadStatus() {
            try {
                const response = await fetch('/api/status');
                renderStatus(await response.json());
            } catch (err) {
                document.getElementById('envStatus').textContent = 'Failed to load status: ' + err.message;
            }
        }

        triggerBtn.addEventListener('click', async () => {
            const token = tokenInput.value.trim();
            localStorage.setItem('dailyreel_token', token);
            triggerBtn.disabled = true;
            triggerBtn.textContent = 'Running...';
            try {
                const headers = {};
                if (token) headers['Authorization'] = 'Bearer ' + token;
                const response = await fetch('/api/run', { method: 'POST', headers });
                renderResult(await response.json());
            } catch (err) {
                renderResult({ error: 'Network error: ' + err.message });
            } finally {
                triggerBtn.textContent = 'Trigger Upload Now';
                await loadStatus();
            }
        });

        loadStatus();
    </script>
</body>
</html>`
