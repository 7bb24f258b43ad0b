// SPDX-License-Identifier: MPL-2.0

package matrixfile

import "fmt"

// Environment is one named unit of the matrix: its provisioning contract and
// its ordered run steps.
type Environment struct {
	// Name is the environment identifier. Raw names may carry bracketed
	// alternative sets; after Parse the name is always concrete.
	Name EnvName `json:"name"`
	// Mode selects how the environment's dependency context is populated.
	Mode ProvisionMode `json:"mode,omitempty"`
	// ArtifactPattern is the glob selecting the prebuilt distributable to
	// install. Required when Mode is "artifact", forbidden otherwise.
	ArtifactPattern string `json:"artifact_pattern,omitempty"`
	// AllowExternalTools permits run steps to invoke programs that were not
	// installed into the provisioned context.
	AllowExternalTools bool `json:"allow_external_tools,omitempty"`
	// Deps names auxiliary dependency groups installed alongside the project
	// in "source" mode (e.g. "test", "docs").
	Deps []string `json:"deps,omitempty"`
	// Env contains extra environment variables for this environment's
	// execution context.
	Env map[string]string `json:"env,omitempty"`
	// Provision is the ordered list of extra provisioning steps, run after
	// the mode's own installation work.
	Provision []CommandStep `json:"provision,omitempty"`
	// Steps is the ordered list of run steps (required, at least one).
	Steps []CommandStep `json:"steps"`
}

// Validate performs the Go-level checks the CUE schema cannot express.
// The name is validated in its resolved (post-expansion) form by Parse;
// Validate only checks the remaining fields.
func (e Environment) Validate() []error {
	var errs []error

	mode := e.mode()
	if isValid, modeErrs := mode.IsValid(); !isValid {
		errs = append(errs, modeErrs...)
	}

	if mode == ProvisionArtifact && e.ArtifactPattern == "" {
		errs = append(errs, fmt.Errorf("environment %q: artifact_pattern is required when mode is %q", e.Name, ProvisionArtifact))
	}
	if mode != ProvisionArtifact && e.ArtifactPattern != "" {
		errs = append(errs, fmt.Errorf("environment %q: artifact_pattern is only allowed when mode is %q", e.Name, ProvisionArtifact))
	}
	if len(e.Deps) > 0 && mode != ProvisionSource {
		errs = append(errs, fmt.Errorf("environment %q: deps are only allowed when mode is %q", e.Name, ProvisionSource))
	}

	if len(e.Steps) == 0 {
		errs = append(errs, fmt.Errorf("environment %q: at least one run step is required", e.Name))
	}
	for i, step := range e.Provision {
		if err := step.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("environment %q: provision step %d: %w", e.Name, i, err))
		}
	}
	for i, step := range e.Steps {
		if err := step.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("environment %q: step %d: %w", e.Name, i, err))
		}
	}

	return errs
}

// EffectiveMode returns the environment's provisioning mode, defaulting to
// "skip" when unset.
func (e Environment) EffectiveMode() ProvisionMode { return e.mode() }

func (e Environment) mode() ProvisionMode {
	if e.Mode == "" {
		return ProvisionSkip
	}
	return e.Mode
}
