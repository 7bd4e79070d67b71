package lsp_test

import (
	"encoding/json"
	"testing"

	"bennypowers.dev/csstree/lsp"
	"github.com/stretchr/testify/assert"
)

func TestDetectPullDiagnosticsSupport(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "diagnostic capability",
			raw:  `{"capabilities": {"textDocument": {"diagnostic": {"dynamicRegistration": false}}}}`,
			want: true,
		},
		{
			name: "empty diagnostic object",
			raw:  `{"capabilities": {"textDocument": {"diagnostic": {}}}}`,
			want: true,
		},
		{
			name: "3.16 client",
			raw:  `{"capabilities": {"textDocument": {"hover": {"contentFormat": ["markdown"]}}}}`,
			want: false,
		},
		{
			name: "null diagnostic",
			raw:  `{"capabilities": {"textDocument": {"diagnostic": null}}}`,
			want: false,
		},
		{
			name: "no textDocument capabilities",
			raw:  `{"capabilities": {"workspace": {}}}`,
			want: false,
		},
		{
			name: "empty params",
			raw:  `{}`,
			want: false,
		},
		{
			name: "malformed",
			raw:  `{"capabilities": `,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lsp.DetectPullDiagnosticsSupport(json.RawMessage(tt.raw)))
		})
	}
}
