package whisper

// Config captures runtime settings for transcription.
type Config struct {
	// Model is the Whisper model to use (e.g., "small").
	Model string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
}

// Transcription configuration constants.
const (
	DefaultModel   = "small"
	CUDAIndexURL   = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL   = "https://pypi.org/simple"
	BatchSize      = "4"
	OutputFormat   = "json"
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
	CPUComputeType = "int8"
)

// UVXCommand runs the transcriber through uv's tool runner.
const UVXCommand = "uvx"
