package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactingHandler(t *testing.T) {
	tests := []struct {
		name     string
		attrs    []slog.Attr
		expected map[string]string
	}{
		{
			name: "sensitive keys are redacted",
			attrs: []slog.Attr{
				slog.String("payload", "<Invoice>...</Invoice>"),
				slog.String("rawxml", "<Messaging>...</Messaging>"),
				slog.String("message_id", "uuid:1234"), // safe
			},
			expected: map[string]string{
				"payload":    "[REDACTED]",
				"rawxml":     "[REDACTED]",
				"message_id": "uuid:1234",
			},
		},
		{
			name: "case insensitive matching",
			attrs: []slog.Attr{
				slog.String("PartContent", "binary blob"),
				slog.String("PAYLOAD", "more content"),
			},
			expected: map[string]string{
				"PartContent": "[REDACTED]",
				"PAYLOAD":     "[REDACTED]",
			},
		},
		{
			name: "nested groups are redacted",
			attrs: []slog.Attr{
				slog.Group("part",
					slog.String("payload", "hidden"),
					slog.String("content_id", "att-1"),
				),
			},
			expected: map[string]string{
				"part.payload":    "[REDACTED]",
				"part.content_id": "att-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewRedactingHandler(slog.NewJSONHandler(&buf, nil))
			logger := slog.New(h)

			// Log with attributes
			args := make([]any, len(tt.attrs))
			for i, a := range tt.attrs {
				args[i] = a
			}
			logger.Info("test message", args...)

			// Parse result
			var result map[string]any
			if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
				t.Fatalf("failed to parse log output: %v", err)
			}

			// Verify expectations
			for k, v := range tt.expected {
				parts := strings.Split(k, ".")
				var val any = result
				var found bool

				// Traverse json map to find key
				for i, part := range parts {
					m, ok := val.(map[string]any)
					if !ok {
						break
					}
					val, ok = m[part]
					if !ok {
						break
					}
					if i == len(parts)-1 {
						found = true
					}
				}

				if !found {
					t.Errorf("key %s not found in output", k)
					continue
				}

				if val != v {
					t.Errorf("key %s: got %v, want %v", k, val, v)
				}
			}
		})
	}
}
