package utils

import (
	"testing"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean object untouched",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "markdown fences stripped",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "prose around object",
			input: `Ecco il risultato: {"a": 1} Spero sia utile!`,
			want:  `{"a": 1}`,
		},
		{
			name:  "array before object wins",
			input: `[{"a": 1}]`,
			want:  `[{"a": 1}]`,
		},
		{
			name:  "no brackets returns input",
			input: "nessun json qui",
			want:  "nessun json qui",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSONBlock(tc.input); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSmartParse(t *testing.T) {
	type payload struct {
		Tipo       string  `json:"tipo_documento"`
		Confidence float64 `json:"confidence"`
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, p payload)
	}{
		{
			name:  "valid json",
			input: `{"tipo_documento": "cu", "confidence": 0.9}`,
			check: func(t *testing.T, p payload) {
				if p.Tipo != "cu" || p.Confidence != 0.9 {
					t.Errorf("unexpected payload: %+v", p)
				}
			},
		},
		{
			name:  "fenced with prose",
			input: "Certo! Ecco l'estrazione:\n```json\n{\"tipo_documento\": \"busta_paga\", \"confidence\": 0.8}\n```",
			check: func(t *testing.T, p payload) {
				if p.Tipo != "busta_paga" {
					t.Errorf("unexpected payload: %+v", p)
				}
			},
		},
		{
			name:  "trailing comma repaired",
			input: `{"tipo_documento": "isee", "confidence": 0.7,}`,
			check: func(t *testing.T, p payload) {
				if p.Tipo != "isee" {
					t.Errorf("unexpected payload: %+v", p)
				}
			},
		},
		{
			name:  "hjson style unquoted keys",
			input: "{\n  tipo_documento: polizza\n  confidence: 0.6\n}",
			check: func(t *testing.T, p payload) {
				if p.Tipo != "polizza" {
					t.Errorf("unexpected payload: %+v", p)
				}
			},
		},
		{
			name:    "hopeless input fails",
			input:   "non sono in grado di leggere questo documento",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			err := SmartParse(tc.input, &p)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, p)
		})
	}
}

func TestSmartParse_Slice(t *testing.T) {
	var items []map[string]interface{}
	input := "```json\n[{\"titolo\": \"Detrazione\"}, {\"titolo\": \"Bonus\"}]\n```"

	if err := SmartParse(input, &items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}
