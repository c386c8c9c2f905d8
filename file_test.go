package bgmask

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encodeSamplePNG(t), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir, "logo.png")
	out := filepath.Join(dir, "logo_clean.png")

	res, err := ProcessFile(in, out, PolicyLight)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if res.Size() != "(4, 3)" {
		t.Fatalf("Size = %s", res.Size())
	}

	img, err := readSample(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want, _, _ := RemoveBackground(newSampleImage(), PolicyLight)
	if got := cloneToNRGBA(img); string(got.Pix) != string(want.Pix) {
		t.Fatalf("written file differs from in-memory result")
	}
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")

	_, err := ProcessFile(filepath.Join(dir, "missing.png"), out, PolicyDark)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output should not be created on failure")
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(filepath.Join("public", "logo.jpg"), "_transparent")
	if want := filepath.Join("public", "logo_transparent.png"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	var jobs []Job
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		in := writeSample(t, dir, name)
		jobs = append(jobs, Job{In: in, Out: OutputPath(in, "_transparent")})
	}

	results, err := ProcessBatch(context.Background(), jobs, BatchOptions{Policy: PolicyDark, Workers: 2})
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}

	_, want, _ := RemoveBackground(newSampleImage(), PolicyDark)
	for i, res := range results {
		if res != want {
			t.Fatalf("result %d = %+v, want %+v", i, res, want)
		}
		if _, err := os.Stat(jobs[i].Out); err != nil {
			t.Fatalf("output %d: %v", i, err)
		}
	}
}

func TestProcessBatchErrors(t *testing.T) {
	dir := t.TempDir()
	jobs := []Job{
		{In: writeSample(t, dir, "ok.png"), Out: filepath.Join(dir, "ok_out.png")},
		{In: filepath.Join(dir, "missing.png"), Out: filepath.Join(dir, "missing_out.png")},
	}

	if _, err := ProcessBatch(context.Background(), jobs, BatchOptions{Policy: PolicyLight}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := ProcessBatch(context.Background(), jobs, BatchOptions{}); err == nil {
		t.Fatalf("expected invalid policy error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ProcessBatch(ctx, jobs[:1], BatchOptions{Policy: PolicyLight}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func readSample(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := Decode(f)
	return img, err
}

func TestProcessBatchRejectsCollidingOutputs(t *testing.T) {
	dir := t.TempDir()
	png := writeSample(t, dir, "a.png")
	gif := filepath.Join(dir, "a.gif")
	other := writeSample(t, dir, "b.png")

	cases := []struct {
		name string
		jobs []Job
	}{
		{
			name: "same_output",
			jobs: []Job{
				{In: png, Out: OutputPath(png, "_t")},
				{In: gif, Out: OutputPath(gif, "_t")},
			},
		},
		{
			name: "output_is_input",
			jobs: []Job{
				{In: png, Out: other},
				{In: other, Out: OutputPath(other, "_t")},
			},
		},
		{
			name: "in_place",
			jobs: []Job{{In: png, Out: png}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ProcessBatch(context.Background(), tc.jobs, BatchOptions{Policy: PolicyLight}); err == nil {
				t.Fatalf("expected colliding jobs to be rejected")
			}
			if _, err := os.Stat(OutputPath(png, "_t")); !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("no job should have run, stat err = %v", err)
			}
		})
	}
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "logo_clean.png")
	failing := func(w io.Writer) error {
		if _, err := w.Write([]byte("\x89PNG partial")); err != nil {
			return err
		}
		return errors.New("disk full")
	}

	if err := writeFile(out, failing); err == nil {
		t.Fatalf("expected write error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, found %d entries (first %s)", len(entries), entries[0].Name())
	}

	// An existing output survives a failed rewrite untouched.
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	if err := writeFile(out, failing); err == nil {
		t.Fatalf("expected write error")
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "previous" {
		t.Fatalf("existing output changed: %q, %v", data, err)
	}
}
