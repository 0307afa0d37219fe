package client

// Engine selects the simulation engine for a run.
type Engine string

// Supported engines.
const (
	EngineAnuga  Engine = "anuga"
	EngineTuflow Engine = "tuflow"
)

// Model is a named collection of input data with owner metadata.
type Model struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Email       string    `json:"email,omitempty"`
	Data        *DataNode `json:"data,omitempty"`
}

// DataNode is one folder in a model's hierarchical file listing.
type DataNode struct {
	Name    string     `json:"name"`
	Folders []DataNode `json:"folders,omitempty"`
	Files   []string   `json:"files,omitempty"`
}

// ModelPatch is a partial metadata update. Empty fields are left
// untouched by the server.
type ModelPatch struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
}

// RunSpec is the request to queue simulation runs against a model.
type RunSpec struct {
	Model  string `json:"model"`
	Script string `json:"script,omitempty"`
	Engine Engine `json:"engine"`
	Notify bool   `json:"notify"`
	Watch  bool   `json:"watch"`
}

// RunReceipt is the per-script outcome of a run creation request.
// Status is the HTTP-equivalent status for that script's run; 201 means
// the run was queued.
type RunReceipt struct {
	Status     int    `json:"status"`
	EntryPoint string `json:"entry_point,omitempty"`
	TaskID     string `json:"task_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Queued reports whether the receipt describes a successfully queued run.
func (r RunReceipt) Queued() bool {
	return r.Status == 201
}

// ResultFilter selects results by any combination of task id, model name
// and entry-point script.
type ResultFilter struct {
	TaskID string
	Model  string
	Script string
}

// Result is the read-only projection of a run's output.
type Result struct {
	TaskID     string       `json:"task_id"`
	Model      string       `json:"model"`
	EntryPoint string       `json:"entry_point,omitempty"`
	Status     string       `json:"status"`
	Files      []ResultFile `json:"files,omitempty"`
}

// ResultFile is one downloadable output file.
type ResultFile struct {
	FID  string `json:"fid"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}
