package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

func newSite(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/":
			_, _ = io.WriteString(w, `<html lang="en"><head><title>Test site home page</title></head><body><a href="/a">A</a><a href="/b">B</a></body></html>`)
		case "/a", "/b":
			_, _ = io.WriteString(w, `<html lang="en"><head><title>Test site sub page</title></head><body><a href="/">Home</a></body></html>`)
		default:
			http.NotFound(w, r)
		}
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func execute(t *testing.T, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAuditCmd(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	site := newSite(t)

	t.Run("JSON", func(t *testing.T) {
		out, err := execute(t, "audit", site.URL, "--max-pages", "2")
		require.NoError(t, err)

		var resp model.AuditResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, 2, resp.Input.MaxPages)
		assert.Equal(t, 2, resp.Summary.PagesScanned)
		assert.Equal(t, site.URL+"/", resp.Reports[0].URL)
		assert.Equal(t, site.URL+"/a", resp.Reports[1].URL)
	})

	t.Run("Markdown To File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.md")
		out, err := execute(t, "audit", site.URL, "-f", "markdown", "-o", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Site Audit: "+site.URL)
		assert.Contains(t, string(data), "## "+site.URL+"/b")
	})

	t.Run("Invalid URL", func(t *testing.T) {
		_, err := execute(t, "audit", "ftp://example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audit failed")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := execute(t, "audit", site.URL, "--format", "xml")
		assert.ErrorContains(t, err, "unknown report format")
	})

	t.Run("Missing Argument", func(t *testing.T) {
		_, err := execute(t, "audit")
		assert.Error(t, err)
	})
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "webhack version ")
	assert.NotEmpty(t, getVersion())
}
