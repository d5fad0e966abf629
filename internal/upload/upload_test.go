package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tuya/fastdata/internal/fetch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

type recorder struct {
	levels []string
	msgs   []string
}

func (r *recorder) add(level, msg string) {
	r.levels = append(r.levels, level)
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) Info(msg string)    { r.add("info", msg) }
func (r *recorder) Success(msg string) { r.add("success", msg) }
func (r *recorder) Warning(msg string) { r.add("warning", msg) }
func (r *recorder) Danger(msg string)  { r.add("danger", msg) }

func (r *recorder) last() string {
	if len(r.levels) == 0 {
		return ""
	}
	return r.levels[len(r.levels)-1]
}

func validFile() FileInfo {
	return FileInfo{Path: "/tmp/report.xlsx", Name: "report.xlsx", Size: 2048}
}

func TestAccepts(t *testing.T) {
	assert.True(t, Accepts(FileInfo{Name: "a.csv"}))
	assert.True(t, Accepts(FileInfo{Name: "A.XLS"}))
	assert.True(t, Accepts(FileInfo{Name: "blob", MIME: "text/csv; charset=utf-8"}))
	assert.True(t, Accepts(FileInfo{Name: "blob", MIME: "application/vnd.ms-excel"}))
	assert.False(t, Accepts(FileInfo{Name: "notes.txt", MIME: "text/plain"}))
	assert.False(t, Accepts(FileInfo{Name: "archive.xlsx.zip", MIME: "application/zip"}))
}

func TestFileInfoLabels(t *testing.T) {
	fi := FileInfo{Size: 1536}
	assert.Equal(t, "1.50 KB", fi.SizeKB())
	assert.Equal(t, "not specified", fi.TypeLabel())
}

func TestSelectValidEnablesSubmit(t *testing.T) {
	n := &recorder{}
	f := NewFlow(n)
	assert.Equal(t, NoFileSelected, f.State())
	assert.False(t, f.CanSubmit())

	require.NoError(t, f.Select(validFile()))
	assert.Equal(t, FileSelectedValid, f.State())
	assert.True(t, f.CanSubmit())
	assert.Equal(t, "success", n.last())
	assert.Equal(t, "File selected: report.xlsx", n.msgs[0])
}

func TestRejectedFileLeavesPanelsUntouched(t *testing.T) {
	n := &recorder{}
	f := NewFlow(n)

	require.NoError(t, f.Select(validFile()))
	_, err := f.Begin()
	require.NoError(t, err)
	f.Complete(Response{File: validFile(), Pretty: "{}"}, nil)
	before, ok := f.ResponsePanel()
	require.True(t, ok)

	err = f.Select(FileInfo{Name: "virus.exe", MIME: "application/x-msdownload"})
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.False(t, f.CanSubmit())
	assert.Equal(t, "warning", n.last())

	after, ok := f.ResponsePanel()
	assert.True(t, ok)
	assert.Equal(t, before, after)
	_, errVisible := f.ErrorPanel()
	assert.False(t, errVisible)
}

func TestRejectedFileFromEmptyFlow(t *testing.T) {
	f := NewFlow(nil)
	assert.ErrorIs(t, f.Select(FileInfo{Name: "photo.png"}), ErrUnsupportedFile)
	assert.Equal(t, NoFileSelected, f.State())
	_, ok := f.ResponsePanel()
	assert.False(t, ok)
	_, ok = f.ErrorPanel()
	assert.False(t, ok)
}

func TestBeginGuards(t *testing.T) {
	n := &recorder{}
	f := NewFlow(n)

	_, err := f.Begin()
	assert.ErrorIs(t, err, ErrNoFile)
	assert.Equal(t, "warning", n.last())

	require.NoError(t, f.Select(validFile()))
	_, err = f.Begin()
	require.NoError(t, err)
	assert.False(t, f.CanSubmit())

	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrInFlight)
	assert.ErrorIs(t, f.Select(validFile()), ErrInFlight)
}

func TestPanelsAreExclusive(t *testing.T) {
	n := &recorder{}
	f := NewFlow(n)
	require.NoError(t, f.Select(validFile()))

	_, err := f.Begin()
	require.NoError(t, err)
	f.Complete(Response{Pretty: `{"ok": true}`}, nil)
	assert.Equal(t, Success, f.State())
	_, respOK := f.ResponsePanel()
	_, errOK := f.ErrorPanel()
	assert.True(t, respOK)
	assert.False(t, errOK)
	assert.True(t, f.CanSubmit())

	_, err = f.Begin()
	require.NoError(t, err)
	_, respOK = f.ResponsePanel()
	assert.False(t, respOK, "panels hidden while uploading")

	f.Complete(Response{}, &fetch.StatusError{Code: 500})
	assert.Equal(t, Failure, f.State())
	msg, errOK := f.ErrorPanel()
	_, respOK = f.ResponsePanel()
	assert.True(t, errOK)
	assert.False(t, respOK)
	assert.Equal(t, "HTTP error! status: 500", msg)
	assert.Equal(t, "danger", n.last())
	assert.True(t, f.CanSubmit())
}

func TestCompleteIgnoredWhenIdle(t *testing.T) {
	f := NewFlow(nil)
	f.Complete(Response{}, errors.New("late"))
	assert.Equal(t, NoFileSelected, f.State())
	_, ok := f.ErrorPanel()
	assert.False(t, ok)
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ventas.csv")
	require.NoError(t, os.WriteFile(path, []byte("producto,cantidad\nA,1\nB,2\nC,3\n"), 0o644))
	return path
}

func TestInspectAndSelectPath(t *testing.T) {
	path := writeCSV(t)
	fi, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "ventas.csv", fi.Name)
	assert.EqualValues(t, 30, fi.Size)
	assert.NotEmpty(t, fi.MIME)

	f := NewFlow(nil)
	require.NoError(t, f.SelectPath(path))
	assert.True(t, f.CanSubmit())

	assert.Error(t, f.SelectPath(filepath.Join(t.TempDir(), "missing.csv")))
}

func TestClientUpload(t *testing.T) {
	path := writeCSV(t)
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC)

	var gotSource, gotTimestamp, gotName, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotSource = r.FormValue("source")
		gotTimestamp = r.FormValue("timestamp")
		file, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = hdr.Filename
		b, _ := io.ReadAll(file)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"received","rows":3}`))
	}))
	defer srv.Close()
	hc := srv.Client()
	defer hc.CloseIdleConnections()

	fi, err := Inspect(path)
	require.NoError(t, err)

	c := &Client{URL: srv.URL + "/test", Source: "tuya-frontend", HTTP: hc, Now: func() time.Time { return fixed }}
	resp, err := c.Upload(context.Background(), fi)
	require.NoError(t, err)

	assert.Equal(t, "tuya-frontend", gotSource)
	assert.Equal(t, "2024-05-06T07:08:09.123Z", gotTimestamp)
	assert.Equal(t, "ventas.csv", gotName)
	assert.Contains(t, gotBody, "producto,cantidad")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "{\n  \"rows\": 3,\n  \"status\": \"received\"\n}", resp.Pretty)
}

func TestClientUploadHTTPError(t *testing.T) {
	path := writeCSV(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()
	hc := srv.Client()
	defer hc.CloseIdleConnections()

	fi, err := Inspect(path)
	require.NoError(t, err)

	c := &Client{URL: srv.URL, Source: "tuya-frontend", HTTP: hc}
	_, err = c.Upload(context.Background(), fi)
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 500", err.Error())
}
