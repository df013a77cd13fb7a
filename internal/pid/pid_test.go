package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "topio.abc.1.file", Format("abc", 1, "file"))
	assert.Equal(t, "topio.geo-data.9000.api", Format("geo-data", 9000, "api"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{
			name:  "canonical id",
			input: "topio.abc.1.file",
			want:  ID{OwnerNamespace: "abc", AssetSeq: 1, AssetType: "file"},
		},
		{
			name:  "large sequence",
			input: "topio.geo-data.184467440737.stream",
			want:  ID{OwnerNamespace: "geo-data", AssetSeq: 184467440737, AssetType: "stream"},
		},
		{
			name:  "mixed case namespace",
			input: "topio.OrgABC.42.api",
			want:  ID{OwnerNamespace: "OrgABC", AssetSeq: 42, AssetType: "api"},
		},
		{name: "empty string", input: "", wantErr: true},
		{name: "three fields", input: "a.b.c", wantErr: true},
		{name: "five fields", input: "topio.abc.1.file.extra", wantErr: true},
		{name: "no separators", input: "topio", wantErr: true},
		{name: "wrong tag", input: "t0pio.abc.1.file", wantErr: true},
		{name: "missing tag", input: "abc.1.file", wantErr: true},
		{name: "non-integer sequence", input: "topio.abc.one.file", wantErr: true},
		{name: "negative sequence", input: "topio.abc.-1.file", wantErr: true},
		{name: "zero sequence", input: "topio.abc.0.file", wantErr: true},
		{name: "empty namespace", input: "topio..1.file", wantErr: true},
		{name: "empty asset type", input: "topio.abc.1.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		ns := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_-]{0,23}`).Draw(r, "ns")
		assetType := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_-]{0,23}`).Draw(r, "assetType")
		seq := rapid.Int64Range(1, 1<<50).Draw(r, "seq")

		got, err := Parse(Format(ns, seq, assetType))
		require.NoError(t, err)
		assert.Equal(t, ID{OwnerNamespace: ns, AssetSeq: seq, AssetType: assetType}, got)
		assert.Equal(t, Format(ns, seq, assetType), got.String())
	})
}
