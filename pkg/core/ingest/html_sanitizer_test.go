package ingest

import (
	"strings"
	"testing"
)

func TestHTMLToText(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style>
<script>track();</script></head>
<body>
<h1>Bolletta Enel Energia</h1>
<table>
<tr><td>Totale da pagare</td><td>EUR 85,00</td></tr>
<tr><td>Consumo</td><td>220 kWh</td></tr>
</table>
<p>Scadenza: 15/10/2024</p>
</body></html>`

	text, err := HTMLToText(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(text, "track()") || strings.Contains(text, "color: red") {
		t.Errorf("script/style content must be removed, got %q", text)
	}
	if !strings.Contains(text, "Bolletta Enel Energia") {
		t.Errorf("heading text missing: %q", text)
	}
	// Cell separators keep amounts next to their labels.
	if !strings.Contains(text, "Totale da pagare | EUR 85,00") {
		t.Errorf("table cells not flattened with separators: %q", text)
	}
	if !strings.Contains(text, "Scadenza: 15/10/2024") {
		t.Errorf("paragraph text missing: %q", text)
	}
}

func TestHTMLToText_CollapsesBlankLines(t *testing.T) {
	html := "<div>prima</div><div></div><div></div><div></div><div>seconda</div>"

	text, err := HTMLToText(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(text, "\n\n\n") {
		t.Errorf("runs of blank lines must collapse, got %q", text)
	}
}
