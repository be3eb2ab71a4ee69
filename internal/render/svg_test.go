package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// wellFormed — документ разбирается XML-декодером до конца.
func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestSVG_Placeholder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, NewComposer(assets).Compose(nil)))

	out := buf.String()
	require.Contains(t, out, `width="1146" height="600"`)
	require.Contains(t, out, `xlink:href="https://frame.example.com/image.png"`)
	require.Contains(t, out, `fill="#111113"`)
	wellFormed(t, buf.Bytes())
}

func TestSVG_ProfileEscapesUserContent(t *testing.T) {
	t.Parallel()

	p := sample()
	p.AvatarURL = `https://cdn.example.com/a.png?x=1&y="2"`
	p.DisplayName = "<script>alert(1)</script>"
	p.Bio = "tom & jerry"

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, NewComposer(assets).Compose(p)))

	out := buf.String()
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
	require.Contains(t, out, "tom &amp; jerry")
	require.Contains(t, out, `x=1&amp;y=&#34;2&#34;`)
	require.Contains(t, out, `clip-path="url(#clip1)"`)
	require.Contains(t, out, "7 credentials")
	wellFormed(t, buf.Bytes())
}

func TestSVG_NilRoot(t *testing.T) {
	t.Parallel()
	require.Error(t, SVG(io.Discard, nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVG_WriteError(t *testing.T) {
	t.Parallel()

	err := SVG(failingWriter{}, NewComposer(assets).Compose(sample()))
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "disk full"))
}

func TestMeasure_RowCentersAndSums(t *testing.T) {
	t.Parallel()

	row := Row(10, Image("a", 20, 0), Image("b", 40, 0))
	w, h := measure(row, 1000)
	require.Equal(t, 70, w)
	require.Equal(t, 40, h)

	col := Column(5, Image("a", 20, 0), Image("b", 40, 0))
	w, h = measure(col, 1000)
	require.Equal(t, 40, w)
	require.Equal(t, 65, h)
}
