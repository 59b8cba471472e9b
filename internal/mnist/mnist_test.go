package mnist

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeIDXImages builds a minimal IDX image file: n images of rows×cols
// pixels, with pixel values taken from fill(imageIndex).
func writeIDXImages(t *testing.T, path string, n, rows, cols int, fill func(i int) byte) {
	t.Helper()

	var buf bytes.Buffer
	for _, v := range []uint32{imageMagic, uint32(n), uint32(rows), uint32(cols)} {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, v))
	}
	for i := 0; i < n; i++ {
		img := bytes.Repeat([]byte{fill(i)}, rows*cols)
		buf.Write(img)
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func writeIDXLabels(t *testing.T, path string, labels []byte) {
	t.Helper()

	var buf bytes.Buffer
	for _, v := range []uint32{labelMagic, uint32(len(labels))} {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, v))
	}
	buf.Write(labels)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	labels := filepath.Join(dir, "labels")

	writeIDXImages(t, images, 3, 2, 2, func(i int) byte { return byte(i * 100) })
	writeIDXLabels(t, labels, []byte{7, 0, 9})

	ds, err := LoadDataset(images, labels)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	require.Equal(t, 2, ds.Rows)
	require.Equal(t, 2, ds.Cols)
	require.Equal(t, []byte{100, 100, 100, 100}, ds.Images[1])
	require.Equal(t, []byte{7, 0, 9}, ds.Labels)
}

func TestLoadDatasetBadMagic(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	labels := filepath.Join(dir, "labels")

	// Swap the files: label magic where image magic is expected.
	writeIDXLabels(t, images, []byte{1})
	writeIDXImages(t, labels, 1, 1, 1, func(int) byte { return 0 })

	_, err := LoadDataset(images, labels)
	require.ErrorContains(t, err, "magic")
}

func TestLoadDatasetCountMismatch(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	labels := filepath.Join(dir, "labels")

	writeIDXImages(t, images, 2, 1, 1, func(int) byte { return 0 })
	writeIDXLabels(t, labels, []byte{1, 2, 3})

	_, err := LoadDataset(images, labels)
	require.ErrorContains(t, err, "does not match")
}

func TestLoadDatasetTruncatedPixels(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")

	writeIDXImages(t, images, 2, 2, 2, func(int) byte { return 1 })
	data, err := os.ReadFile(images)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(images, data[:len(data)-3], 0o644))

	_, _, _, err = readIDXImages(images)
	require.Error(t, err)
}

// A header whose declared dimensions could never fit in the file must be
// rejected before any allocation sized from it, even when the uint32
// product of rows and cols wraps.
func TestReadIDXImagesRejectsOversizedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images")

	var buf bytes.Buffer
	for _, v := range []uint32{imageMagic, math.MaxUint32, 1 << 16, 1 << 16} {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, v))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, _, _, err := readIDXImages(path)
	require.ErrorContains(t, err, "file holds")
}

func TestReadIDXLabelsRejectsOversizedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels")

	var buf bytes.Buffer
	for _, v := range []uint32{labelMagic, math.MaxUint32} {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, v))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := readIDXLabels(path)
	require.ErrorContains(t, err, "file holds")
}

func TestSamples(t *testing.T) {
	ds := &Dataset{
		Rows:   1,
		Cols:   2,
		Images: [][]byte{{0, 255}, {51, 102}},
		Labels: []byte{3, 0},
	}

	samples, err := ds.Samples()
	require.NoError(t, err)
	require.Len(t, samples, 2)

	require.Equal(t, 0.0, samples[0].Input.At(0))
	require.Equal(t, 1.0, samples[0].Input.At(1))
	require.InDelta(t, 0.2, samples[1].Input.At(0), 1e-12)

	// Digit n maps to one-hot index n.
	require.Equal(t, 10, samples[0].Target.Len())
	require.Equal(t, 1.0, samples[0].Target.At(3))
	require.Equal(t, 3, samples[0].Target.ArgMax())
	require.Equal(t, 0, samples[1].Target.ArgMax())

	var sum float64
	for i := 0; i < samples[0].Target.Len(); i++ {
		sum += samples[0].Target.At(i)
	}
	require.Equal(t, 1.0, sum)
}

func TestSamplesBadLabel(t *testing.T) {
	ds := &Dataset{Images: [][]byte{{0}}, Labels: []byte{10}}
	_, err := ds.Samples()
	require.ErrorContains(t, err, "out of range")
}

func TestFetchDownloadsMissingFiles(t *testing.T) {
	payloads := map[string][]byte{}
	for i, name := range []string{TrainImagesFile, TrainLabelsFile, TestImagesFile, TestLabelsFile} {
		payloads["/"+name+".gz"] = []byte{byte(i), 1, 2, 3}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		gz := gzip.NewWriter(w)
		_, _ = gz.Write(body)
		_ = gz.Close()
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := &Downloader{BaseURL: srv.URL + "/", Client: srv.Client()}
	require.NoError(t, d.Fetch(context.Background(), dir))

	for name, want := range payloads {
		got, err := os.ReadFile(filepath.Join(dir, name[1:len(name)-3]))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits <= 2 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte{9})
		_ = gz.Close()
	}))
	defer srv.Close()

	dir := t.TempDir()
	// Pre-create all but one file so only a single download happens.
	for _, name := range []string{TrainLabelsFile, TestImagesFile, TestLabelsFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644))
	}

	d := &Downloader{BaseURL: srv.URL + "/", Client: srv.Client()}
	require.NoError(t, d.Fetch(context.Background(), dir))
	require.Equal(t, 3, hits)
}

func TestFetchSkipsExistingFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	dir := t.TempDir()
	for _, name := range []string{TrainImagesFile, TrainLabelsFile, TestImagesFile, TestLabelsFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644))
	}

	d := &Downloader{BaseURL: srv.URL + "/", Client: srv.Client()}
	require.NoError(t, d.Fetch(context.Background(), dir))
}
