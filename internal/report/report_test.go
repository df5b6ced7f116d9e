package report_test

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arborist/ndverify/internal/decode"
	"github.com/arborist/ndverify/internal/report"
)

const sampleProof = `
1 1 P&Q P
1 2 P &E 1
1 3 Q &E 1
`

const sampleProofWithFailure = `
1 1 P>Q P
2 2 R P
1,2 3 Q MP 1,2
`

func buildResult(t *testing.T, text string) report.Result {
	t.Helper()
	p, err := decode.BuildProof(text)
	require.NoError(t, err)
	return report.FromProof(p)
}

func TestFromProofAllValid(t *testing.T) {
	r := buildResult(t, sampleProof)
	require.True(t, r.AllValid)
	require.Len(t, r.Lines, 3)
	require.Equal(t, "1", r.Lines[0].Label)
	require.Equal(t, "P", r.Lines[0].Rule)
}

func TestFromProofReportsInvalidLine(t *testing.T) {
	r := buildResult(t, sampleProofWithFailure)
	require.False(t, r.AllValid)
	require.True(t, r.Lines[0].Valid)
	require.True(t, r.Lines[1].Valid)
	require.False(t, r.Lines[2].Valid, "MP's antecedent R does not match P>Q's antecedent P")
}

func TestMarkdownRendersOneRowPerLine(t *testing.T) {
	r := buildResult(t, sampleProof)
	md := r.Markdown()
	require.True(t, strings.Contains(md, "| 1 | P |"))
	require.Equal(t, 3, strings.Count(md, "✓"))
}

func TestEncodeYAMLRoundTrips(t *testing.T) {
	r := buildResult(t, sampleProof)

	var buf strings.Builder
	require.NoError(t, r.EncodeYAML(&buf))

	var decoded report.Result
	require.NoError(t, yaml.Unmarshal([]byte(buf.String()), &decoded))
	require.Equal(t, r.AllValid, decoded.AllValid)
	require.Equal(t, r.Lines, decoded.Lines)
}

func TestEncodeTOMLRoundTrips(t *testing.T) {
	r := buildResult(t, sampleProof)

	var buf strings.Builder
	require.NoError(t, r.EncodeTOML(&buf))

	var decoded report.Result
	_, err := toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	require.Equal(t, r.AllValid, decoded.AllValid)
	require.Equal(t, r.Lines, decoded.Lines)
}
