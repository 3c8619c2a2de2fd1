// Package services holds the error taxonomy and context plumbing shared by
// the external collaborator wrappers (transcriber, translator, synthesizer,
// media tooling) and the pipeline runner that classifies their failures.
package services
