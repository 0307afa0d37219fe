package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tucluster/tuga/pkg/client"
)

// fakeAPI records the order and arguments of Tucluster calls.
type fakeAPI struct {
	ops []string

	archiveName string // server-chosen name for uploaded archives
	patchTarget string
	patch       client.ModelPatch
	addedFiles  []string
	addedTo     []string
	modelName   string
	modelTree   bool
	runSpec     client.RunSpec
	receipts    []client.RunReceipt
	filter      client.ResultFilter
}

func (f *fakeAPI) CreateModel(ctx context.Context, name, description, email string) (*client.Model, error) {
	f.ops = append(f.ops, "CreateModel")
	return &client.Model{Name: name, Description: description, Email: email}, nil
}

func (f *fakeAPI) Models(ctx context.Context) ([]client.Model, error) {
	f.ops = append(f.ops, "Models")
	return []client.Model{{Name: "a"}, {Name: "b"}}, nil
}

func (f *fakeAPI) Model(ctx context.Context, name string, tree bool) (*client.Model, error) {
	f.ops = append(f.ops, "Model")
	f.modelName = name
	f.modelTree = tree
	return &client.Model{Name: name}, nil
}

func (f *fakeAPI) UpdateModel(ctx context.Context, name string, patch client.ModelPatch) (*client.Model, error) {
	f.ops = append(f.ops, "UpdateModel")
	f.patchTarget = name
	f.patch = patch
	return &client.Model{Name: patch.Name}, nil
}

func (f *fakeAPI) UploadModelArchive(ctx context.Context, path string, fn client.ProgressFunc) (*client.Model, error) {
	f.ops = append(f.ops, "UploadModelArchive")
	if fn != nil {
		fn(1)
	}
	return &client.Model{Name: f.archiveName}, nil
}

func (f *fakeAPI) AddModelFile(ctx context.Context, name, path string, fn client.ProgressFunc) error {
	f.ops = append(f.ops, "AddModelFile")
	f.addedFiles = append(f.addedFiles, path)
	f.addedTo = append(f.addedTo, name)
	if fn != nil {
		fn(1)
	}
	return nil
}

func (f *fakeAPI) CreateRun(ctx context.Context, spec client.RunSpec) ([]client.RunReceipt, error) {
	f.ops = append(f.ops, "CreateRun")
	f.runSpec = spec
	return f.receipts, nil
}

func (f *fakeAPI) Results(ctx context.Context, filter client.ResultFilter) ([]client.Result, error) {
	f.ops = append(f.ops, "Results")
	f.filter = filter
	return []client.Result{{TaskID: "t1", Model: "m", Status: "done"}}, nil
}

func (f *fakeAPI) DownloadFile(ctx context.Context, fid string, w io.Writer, fn client.ProgressFunc) (string, error) {
	f.ops = append(f.ops, "DownloadFile")
	data := []byte("file contents")
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if fn != nil {
		fn(int64(len(data)))
	}
	return "depths.asc", nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestCreateWithoutDataNeverUploads(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	err := runCreate(context.Background(), api, &out, createOptions{
		name:        "flood-study",
		description: "desc",
		email:       "owner@example.com",
	})
	if err != nil {
		t.Fatalf("runCreate: %v", err)
	}

	for _, op := range api.ops {
		if op == "UploadModelArchive" || op == "AddModelFile" {
			t.Errorf("Expected no upload calls, got %v", api.ops)
		}
	}
	if len(api.ops) != 1 || api.ops[0] != "CreateModel" {
		t.Errorf("Expected [CreateModel], got %v", api.ops)
	}
	if !strings.Contains(out.String(), "Model flood-study created!") {
		t.Errorf("Expected creation message, got %q", out.String())
	}
}

func TestCreateWithDataUploadsBeforePatch(t *testing.T) {
	api := &fakeAPI{archiveName: "upload-7f3a"}
	var out bytes.Buffer

	data := writeTempFile(t, "data.zip", "zip bytes")
	err := runCreate(context.Background(), api, &out, createOptions{
		name:        "flood-study",
		data:        data,
		description: "desc",
		email:       "owner@example.com",
	})
	if err != nil {
		t.Fatalf("runCreate: %v", err)
	}

	if len(api.ops) != 2 || api.ops[0] != "UploadModelArchive" || api.ops[1] != "UpdateModel" {
		t.Fatalf("Expected [UploadModelArchive UpdateModel], got %v", api.ops)
	}

	// The patch must address the server-returned name, not the requested one.
	if api.patchTarget != "upload-7f3a" {
		t.Errorf("Expected patch target 'upload-7f3a', got '%s'", api.patchTarget)
	}
	if api.patch.Name != "flood-study" {
		t.Errorf("Expected rename to 'flood-study', got '%s'", api.patch.Name)
	}
	if api.patch.Description != "desc" || api.patch.Email != "owner@example.com" {
		t.Errorf("Metadata not propagated: %+v", api.patch)
	}

	if !strings.Contains(out.String(), "Upload successful") {
		t.Errorf("Expected upload confirmation, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Updating metadata...") {
		t.Errorf("Expected metadata notice, got %q", out.String())
	}
}

func TestUpdatePatchesBeforeUploads(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	f1 := writeTempFile(t, "a.txt", "one")
	f2 := writeTempFile(t, "b.txt", "two")

	err := runUpdate(context.Background(), api, &out, updateOptions{
		name:        "flood-study",
		files:       []string{f1, f2},
		description: "new desc",
	})
	if err != nil {
		t.Fatalf("runUpdate: %v", err)
	}

	want := []string{"UpdateModel", "AddModelFile", "AddModelFile"}
	if len(api.ops) != len(want) {
		t.Fatalf("Expected %v, got %v", want, api.ops)
	}
	for i := range want {
		if api.ops[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, api.ops)
		}
	}

	if api.addedFiles[0] != f1 || api.addedFiles[1] != f2 {
		t.Errorf("Files uploaded out of order: %v", api.addedFiles)
	}
}

func TestUpdateWithoutMetadataSkipsPatch(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	f1 := writeTempFile(t, "a.txt", "one")
	err := runUpdate(context.Background(), api, &out, updateOptions{
		name:  "flood-study",
		files: []string{f1},
	})
	if err != nil {
		t.Fatalf("runUpdate: %v", err)
	}

	if len(api.ops) != 1 || api.ops[0] != "AddModelFile" {
		t.Errorf("Expected [AddModelFile], got %v", api.ops)
	}
}

func TestUpdateRenameAddressesFilesByNewName(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	f1 := writeTempFile(t, "a.txt", "one")
	err := runUpdate(context.Background(), api, &out, updateOptions{
		name:    "old-name",
		newName: "new-name",
		files:   []string{f1},
	})
	if err != nil {
		t.Fatalf("runUpdate: %v", err)
	}

	if api.patchTarget != "old-name" {
		t.Errorf("Expected patch addressed by 'old-name', got '%s'", api.patchTarget)
	}
	if api.addedTo[0] != "new-name" {
		t.Errorf("Expected upload addressed by 'new-name', got '%s'", api.addedTo[0])
	}
	if !strings.Contains(out.String(), "renamed to new-name") {
		t.Errorf("Expected rename notice, got %q", out.String())
	}
}

func TestModelListsAllWithoutName(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	if err := runModel(context.Background(), api, &out, modelOptions{}); err != nil {
		t.Fatalf("runModel: %v", err)
	}

	if len(api.ops) != 1 || api.ops[0] != "Models" {
		t.Errorf("Expected [Models], got %v", api.ops)
	}
	if !strings.Contains(out.String(), "Model Info:") {
		t.Errorf("Expected header, got %q", out.String())
	}
}

func TestModelFetchesOneWithName(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	opts := modelOptions{name: "flood-study", tree: true}
	if err := runModel(context.Background(), api, &out, opts); err != nil {
		t.Fatalf("runModel: %v", err)
	}

	if len(api.ops) != 1 || api.ops[0] != "Model" {
		t.Errorf("Expected [Model], got %v", api.ops)
	}
	if api.modelName != "flood-study" {
		t.Errorf("Expected name 'flood-study', got '%s'", api.modelName)
	}
	if !api.modelTree {
		t.Error("Expected tree flag to propagate")
	}
}

func TestResultsPropagatesFilter(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	opts := resultsOptions{filter: client.ResultFilter{TaskID: "t1", Model: "m", Script: "s.py"}}
	if err := runResults(context.Background(), api, &out, opts); err != nil {
		t.Fatalf("runResults: %v", err)
	}

	if api.filter != opts.filter {
		t.Errorf("Expected filter %+v, got %+v", opts.filter, api.filter)
	}
	if !strings.Contains(out.String(), "Result Info:") {
		t.Errorf("Expected header, got %q", out.String())
	}
}

func TestFileDownloadsAndRenames(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer
	dir := t.TempDir()

	if err := runFile(context.Background(), api, &out, "fid-123", dir); err != nil {
		t.Fatalf("runFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "depths.asc"))
	if err != nil {
		t.Fatalf("Expected downloaded file: %v", err)
	}
	if string(data) != "file contents" {
		t.Errorf("Expected 'file contents', got %q", data)
	}
	if !strings.Contains(out.String(), "Downloaded depths.asc") {
		t.Errorf("Expected completion line, got %q", out.String())
	}
}

func TestEngineCommandsShareShape(t *testing.T) {
	for _, engine := range []client.Engine{client.EngineAnuga, client.EngineTuflow} {
		api := &fakeAPI{receipts: []client.RunReceipt{{Status: 201, EntryPoint: "run.py", TaskID: "t1"}}}
		var out bytes.Buffer

		spec := client.RunSpec{Model: "m", Script: "run.py", Engine: engine, Notify: true}
		if err := runEngine(context.Background(), api, &out, spec); err != nil {
			t.Fatalf("runEngine(%s): %v", engine, err)
		}

		if api.runSpec.Engine != engine {
			t.Errorf("Expected engine %s, got %s", engine, api.runSpec.Engine)
		}
		if !api.runSpec.Notify {
			t.Errorf("Expected notify flag to propagate for %s", engine)
		}
	}
}
