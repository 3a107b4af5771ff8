// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import "errors"

// Sentinel errors identifying which pipeline stage failed. Handlers map
// these to user-facing messages; the wrapped cause stays in the logs.
var (
	// ErrPromptGeneration marks a failure in the prompt rewriting stage.
	ErrPromptGeneration = errors.New("generation: prompt rewriting failed")

	// ErrImageGeneration marks a failure in the image synthesis stage.
	ErrImageGeneration = errors.New("generation: image synthesis failed")

	// ErrArtifactPersist marks a failure downloading or storing the image.
	ErrArtifactPersist = errors.New("generation: artifact persistence failed")

	// ErrRecordSave marks a failure recording the generation in the database.
	ErrRecordSave = errors.New("generation: record save failed")
)
