// Package pipelining models multi-stage hardware pipelines.
package pipelining

import (
	"github.com/OpenResearchInstitute/fpga-cores/sim"
)

// A Pipeline moves elements through a fixed series of stages, one stage per
// a configurable number of cycles, into a post-pipeline buffer.
type Pipeline interface {
	sim.Named
	sim.Hookable

	// Tick moves the elements in the pipeline forward.
	Tick() (madeProgress bool)

	// CanAccept checks if the pipeline can accept a new element.
	CanAccept() bool

	// Accept adds an element to the pipeline. It panics if the first stage
	// is occupied.
	Accept(elem interface{})

	// Clear discards all the elements currently in the pipeline.
	Clear()
}

type stageInfo struct {
	elem      interface{}
	cycleLeft int
}

type pipelineImpl struct {
	sim.HookableBase

	name          string
	numStage      int
	cyclePerStage int
	postBuf       sim.Buffer
	stages        []stageInfo
}

func (p *pipelineImpl) Name() string {
	return p.name
}

// Clear discards all the elements in the pipeline.
func (p *pipelineImpl) Clear() {
	p.stages = make([]stageInfo, p.numStage)
}

// Tick moves the elements in the pipeline forward.
func (p *pipelineImpl) Tick() (madeProgress bool) {
	for i := p.numStage - 1; i >= 0; i-- {
		stage := &p.stages[i]

		if stage.elem == nil {
			continue
		}

		if stage.cycleLeft > 0 {
			stage.cycleLeft--
			madeProgress = true
			continue
		}

		if i == p.numStage-1 {
			madeProgress = p.tryMoveToPostBuf(stage) || madeProgress
		} else {
			madeProgress = p.tryMoveToNextStage(i) || madeProgress
		}
	}

	return madeProgress
}

func (p *pipelineImpl) tryMoveToPostBuf(stage *stageInfo) bool {
	if !p.postBuf.CanPush() {
		return false
	}

	p.postBuf.Push(stage.elem)
	stage.elem = nil

	return true
}

func (p *pipelineImpl) tryMoveToNextStage(stageNum int) bool {
	stage := &p.stages[stageNum]
	nextStage := &p.stages[stageNum+1]

	if nextStage.elem != nil {
		return false
	}

	nextStage.elem = stage.elem
	nextStage.cycleLeft = p.cyclePerStage - 1
	stage.elem = nil

	return true
}

// CanAccept checks if the pipeline can accept a new element.
func (p *pipelineImpl) CanAccept() bool {
	if p.numStage == 0 {
		return p.postBuf.CanPush()
	}

	return p.stages[0].elem == nil
}

// Accept adds an element to the pipeline. It panics if the first stage is
// occupied.
func (p *pipelineImpl) Accept(elem interface{}) {
	if p.numStage == 0 {
		p.postBuf.Push(elem)
		return
	}

	if p.stages[0].elem != nil {
		panic("pipeline is not free, use CanAccept before Accept")
	}

	p.stages[0].elem = elem
	p.stages[0].cycleLeft = p.cyclePerStage - 1
}
