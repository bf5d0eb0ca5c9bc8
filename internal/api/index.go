package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// index handles GET /: a minimal upload form for manual testing
func (h *Handler) index(c echo.Context) error {
	page := indexHTML
	if h.mode == "mock" {
		page = strings.Replace(page, "<h1>Speech-to-Text Service</h1>",
			"<h1>Speech-to-Text Service (Mock)</h1>\n    <p class=\"warning\">Mock mode: no actual transcription is performed.</p>", 1)
	}
	return c.HTML(http.StatusOK, page)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Speech-to-Text Service</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        .container { background: #f5f5f5; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
        .form-group { margin-bottom: 15px; }
        label { display: block; margin-bottom: 5px; font-weight: bold; }
        input, select { width: 100%; padding: 8px; border: 1px solid #ddd; border-radius: 4px; }
        button { background: #007cba; color: white; padding: 10px 20px; border: none; border-radius: 4px; cursor: pointer; }
        button:hover { background: #005a87; }
        .warning { background: #fff3cd; border: 1px solid #ffeaa7; padding: 10px; border-radius: 4px; }
    </style>
</head>
<body>
    <h1>Speech-to-Text Service</h1>

    <div class="container">
        <h2>Upload Audio File</h2>
        <form action="/transcribe" method="post" enctype="multipart/form-data">
            <div class="form-group">
                <label for="audio_file">Select Audio File:</label>
                <input type="file" id="audio_file" name="audio_file" accept="audio/*" required>
            </div>
            <div class="form-group">
                <label for="language">Language:</label>
                <select id="language" name="language">
                    <option value="en-US">English (US)</option>
                    <option value="en-GB">English (UK)</option>
                    <option value="es-ES">Spanish</option>
                    <option value="fr-FR">French</option>
                    <option value="de-DE">German</option>
                    <option value="it-IT">Italian</option>
                    <option value="pt-BR">Portuguese (Brazil)</option>
                    <option value="ru-RU">Russian</option>
                    <option value="ja-JP">Japanese</option>
                    <option value="ko-KR">Korean</option>
                    <option value="zh-CN">Chinese (Simplified)</option>
                    <option value="ar-SA">Arabic</option>
                    <option value="hi-IN">Hindi</option>
                    <option value="ur-PK">Urdu</option>
                </select>
            </div>
            <button type="submit">Transcribe Audio</button>
        </form>
    </div>

    <div class="container">
        <h2>Test with Sample Audio</h2>
        <form action="/test" method="post">
            <div class="form-group">
                <label for="test_language">Language:</label>
                <select id="test_language" name="language">
                    <option value="en-US">English (US)</option>
                    <option value="en-GB">English (UK)</option>
                    <option value="es-ES">Spanish</option>
                    <option value="fr-FR">French</option>
                    <option value="de-DE">German</option>
                </select>
            </div>
            <button type="submit">Test with Sample Audio</button>
        </form>
    </div>

    <div class="container">
        <h2>API Endpoints</h2>
        <p><strong>POST /transcribe</strong> - Upload and transcribe audio file</p>
        <p><strong>POST /test</strong> - Test with sample audio from Google Cloud Storage</p>
        <p><strong>GET /ws/transcribe</strong> - Streaming transcription over websocket</p>
        <p><strong>GET /health</strong> - Health check</p>
    </div>
</body>
</html>
`
