// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_XrefOffsets(t *testing.T) {
	data := Build(Lecture()...)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4\n")))
	require.True(t, bytes.HasSuffix(data, []byte("%%EOF\n")))

	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindSubmatch(data)
	require.NotNil(t, m)
	xref, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data[xref:], []byte("xref\n0 9\n")))

	entries := regexp.MustCompile(`(\d{10}) 00000 n `).FindAllSubmatch(data[xref:], -1)
	require.Len(t, entries, 8)
	for i, e := range entries {
		off, err := strconv.Atoi(string(e[1]))
		require.NoError(t, err)
		want := fmt.Sprintf("%d 0 obj\n", i+1)
		assert.True(t, bytes.HasPrefix(data[off:], []byte(want)), "object %d offset", i+1)
	}
}

func TestBuild_StreamLength(t *testing.T) {
	data := Build(Page{{Text: "a (b) c\\d", Y: 700}})
	m := regexp.MustCompile(`<< /Length (\d+) >>\nstream\n`).FindSubmatchIndex(data)
	require.NotNil(t, m)
	n, err := strconv.Atoi(string(data[m[2]:m[3]]))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data[m[1]+n:], []byte("\nendstream")))
	assert.Contains(t, string(data), `(a \(b\) c\\d) Tj`)
}
