package pipelining

import "github.com/OpenResearchInstitute/fpga-cores/sim"

// A Builder can build pipelines.
type Builder struct {
	numStage      int
	cyclePerStage int
	postBuf       sim.Buffer
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		numStage:      5,
		cyclePerStage: 1,
	}
}

// WithNumStage sets the number of pipeline stages.
func (b Builder) WithNumStage(n int) Builder {
	b.numStage = n
	return b
}

// WithCyclePerStage sets the number of cycles an element stays in each
// stage.
func (b Builder) WithCyclePerStage(n int) Builder {
	b.cyclePerStage = n
	return b
}

// WithPostPipelineBuffer sets the buffer that the elements are pushed to
// after passing through the pipeline.
func (b Builder) WithPostPipelineBuffer(buf sim.Buffer) Builder {
	b.postBuf = buf
	return b
}

// Build builds a pipeline.
func (b Builder) Build(name string) Pipeline {
	sim.NameMustBeValid(name)

	if b.numStage < 0 {
		panic("pipeline stage count must not be negative")
	}

	if b.cyclePerStage < 1 {
		panic("pipeline must spend at least 1 cycle per stage")
	}

	if b.postBuf == nil {
		panic("pipeline requires a post-pipeline buffer")
	}

	p := &pipelineImpl{
		name:          name,
		numStage:      b.numStage,
		cyclePerStage: b.cyclePerStage,
		postBuf:       b.postBuf,
	}

	p.Clear()

	return p
}
