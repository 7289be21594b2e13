package fetcher

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/use-agent/cookiefetch/cookies"
	"github.com/use-agent/cookiefetch/models"
)

func TestDownload_WritesFileContent(t *testing.T) {
	t.Chdir(t.TempDir())

	payload := bytes.Repeat([]byte("csv,row,data\n"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	o := newTestOrchestrator(fixedCookies(cookies.Cookie{Name: "session", Value: "abc"}))
	resp, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/export.csv", Browser: "chrome",
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !resp.Success || resp.Status != "success" {
		t.Fatalf("status = %q, want success", resp.Status)
	}
	if resp.Filename != "export.csv" {
		t.Errorf("Filename = %q, want export.csv", resp.Filename)
	}
	if resp.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", resp.Size, len(payload))
	}
	got, err := os.ReadFile("export.csv")
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("file content differs: got %d bytes, want %d", len(got), len(payload))
	}
	if resp.CookiesUsed != 1 {
		t.Errorf("CookiesUsed = %d, want 1", resp.CookiesUsed)
	}
}

func TestDownload_FilenameFromContentDisposition(t *testing.T) {
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="report-final.pdf"`)
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	o := newTestOrchestrator(fixedCookies())
	resp, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/dl?id=42", Browser: "chrome",
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if resp.Filename != "report-final.pdf" {
		t.Errorf("Filename = %q, want report-final.pdf", resp.Filename)
	}
	if _, err := os.Stat("report-final.pdf"); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}

func TestDownload_FilenameFallback(t *testing.T) {
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("blob"))
	}))
	defer srv.Close()

	// Root path and no Content-Disposition leaves nothing to name the
	// file after.
	o := newTestOrchestrator(fixedCookies())
	resp, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/", Browser: "chrome",
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if resp.Filename != "download" {
		t.Errorf("Filename = %q, want download", resp.Filename)
	}
}

func TestUsableName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "/", `\`} {
		if usableName(name) {
			t.Errorf("usableName(%q) = true, want false", name)
		}
	}
	for _, name := range []string{"report.pdf", "download", "a b.txt"} {
		if !usableName(name) {
			t.Errorf("usableName(%q) = false, want true", name)
		}
	}
}

func TestDownload_HostileContentDispositionStaysInCwd(t *testing.T) {
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../../etc/cron.d/evil"`)
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	o := newTestOrchestrator(fixedCookies())
	resp, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/dl", Browser: "chrome",
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if strings.Contains(resp.Filename, "..") {
		t.Errorf("Filename %q escapes the working directory", resp.Filename)
	}
	if _, err := os.Stat("evil"); err != nil {
		t.Errorf("expected base name written in cwd: %v", err)
	}
}

func TestDownload_OutputPathEscapeRejectedBeforeNetwork(t *testing.T) {
	t.Chdir(t.TempDir())

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	o := newTestOrchestrator(fixedCookies())
	_, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/x", Browser: "chrome",
		OutputPath: "../evil",
	})
	if accessCode(t, err) != models.ErrCodeInvalidInput {
		t.Errorf("code = %s, want INVALID_INPUT", accessCode(t, err))
	}
	if hits.Load() != 0 {
		t.Errorf("server hits = %d, want 0", hits.Load())
	}
}

func TestDownload_403WithoutAutoLogin(t *testing.T) {
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	o := newTestOrchestrator(fixedCookies())
	resp, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/gated.zip", Browser: "chrome", AutoLogin: bptr(false),
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if resp.Status != "login_required" || resp.Success {
		t.Fatalf("status = %q success = %v, want login_required", resp.Status, resp.Success)
	}
	if entries, _ := os.ReadDir("."); len(entries) != 0 {
		t.Errorf("no file should be written on a challenge, found %d entries", len(entries))
	}
}

func TestDownload_AutoLoginRetryStreamsFile(t *testing.T) {
	t.Chdir(t.TempDir())

	const body = "archive bytes"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "session=tok" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	store := &stubStore{fn: func(call int) ([]cookies.Cookie, error) {
		if call == 1 {
			return nil, nil
		}
		return []cookies.Cookie{{Name: "session", Value: "tok"}}, nil
	}}
	o := newTestOrchestrator(store)

	resp, err := o.Download(context.Background(), &models.DownloadRequest{
		URL: srv.URL + "/data.bin", Browser: "chrome",
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if resp.Status != "success" || resp.Filename != "data.bin" {
		t.Fatalf("status = %q file = %q, want success data.bin", resp.Status, resp.Filename)
	}
	got, err := os.ReadFile("data.bin")
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(got) != body {
		t.Errorf("file content = %q, want %q", got, body)
	}
}
