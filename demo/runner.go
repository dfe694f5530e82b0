package demo

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/benz9527/dlist/lib/infra"
	"github.com/benz9527/dlist/lib/list"
	"github.com/benz9527/dlist/xlog"
)

type stepOp string

const (
	OpCreate   stepOp = "create"
	OpPrepend  stepOp = "prepend"
	OpContains stepOp = "contains"
	OpGet      stepOp = "get"
	OpInsert   stepOp = "insert"
	OpRemove   stepOp = "remove"
	OpClear    stepOp = "clear"
)

// StepResult records one executed step.
// Value is the probed, fetched, inserted or removed value.
type StepResult struct {
	Op    stepOp
	Index int64
	Value int
	OK    bool
	Err   error
}

type Report struct {
	Scenario string
	Steps    []StepResult
	// Final is the snapshot taken right before the list is cleared.
	Final    []int
	FinalLen int64
}

// Failed counts the steps that did not succeed.
func (r *Report) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.Steps {
		if !s.OK {
			n++
		}
	}
	return n
}

// Err merges the errors of the failed steps, nil if no step returned one.
// A contains probe that misses is not an error.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}
	var es infra.ErrorStack
	for _, s := range r.Steps {
		if s.Err != nil {
			es = infra.AppendErrorStack(es, s.Err)
		}
	}
	if es == nil {
		return nil
	}
	return es
}

type Runner struct {
	scenario *Scenario
	out      io.Writer
	logger   xlog.XLogger
}

func NewRunner(scenario *Scenario, out io.Writer, logger xlog.XLogger) (*Runner, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		return nil, infra.NewErrorStack("[demo] runner logger is nil")
	}
	return &Runner{
		scenario: scenario,
		out:      out,
		logger:   logger,
	}, nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Runner) printForward(l list.LinkedList) {
	for i, v := range l.All() {
		r.printf("Node Index %d, Node Value %d", i, v)
	}
}

func (r *Runner) printBackward(l list.LinkedList) {
	r.printf("Reverse traversal check")
	for i, v := range l.Backward() {
		r.printf("Node Index %d, Node Value %d", i, v)
	}
}

func (r *Runner) record(report *Report, res StepResult) {
	report.Steps = append(report.Steps, res)
	fields := []zap.Field{
		zap.String("op", string(res.Op)),
		zap.Int64("index", res.Index),
		zap.Int("value", res.Value),
		zap.Bool("ok", res.OK),
	}
	if res.Err != nil {
		r.logger.Warn("step failed", append(fields, xlog.Stack(res.Err))...)
		return
	}
	r.logger.Debug("step done", fields...)
}

// Run executes the scenario against a fresh list. The failures of the list
// operations are reported, only the cancellation of ctx stops the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{Scenario: r.scenario.Name}
	s := r.scenario
	r.logger.Info("scenario start",
		zap.String("name", s.Name),
		zap.Ints("values", s.Values),
	)

	l := list.NewLinkedListWith(s.Values...)
	r.record(report, StepResult{Op: OpCreate, Index: l.Len(), OK: true})
	r.printf("Linked list length: %d", l.Len())
	r.printForward(l)
	r.printBackward(l)

	if len(s.Prepend) > 0 {
		for _, v := range s.Prepend {
			if err := ctx.Err(); err != nil {
				return report, infra.WrapErrorStack(err)
			}
			n := l.Prepend(v)
			r.record(report, StepResult{Op: OpPrepend, Value: v, OK: n != nil})
		}
		r.printForward(l)
	}

	for _, v := range s.Contains {
		if err := ctx.Err(); err != nil {
			return report, infra.WrapErrorStack(err)
		}
		ok := l.Contains(v)
		r.record(report, StepResult{Op: OpContains, Value: v, OK: ok})
		r.printf("Linked List contains val %d: %t", v, ok)
	}

	for _, i := range s.Get {
		if err := ctx.Err(); err != nil {
			return report, infra.WrapErrorStack(err)
		}
		n, ok := l.Get(i)
		if !ok {
			r.record(report, StepResult{
				Op:    OpGet,
				Index: i,
				Err:   infra.WrapErrorStackWithMessage(list.ErrInvalidIndex, fmt.Sprintf("[demo] get at %d", i)),
			})
			r.printf("Linked List val at index %d not found", i)
			continue
		}
		r.record(report, StepResult{Op: OpGet, Index: i, Value: n.Value, OK: true})
		r.printf("Linked List val %d at index %d", n.Value, i)
	}

	if len(s.Insert) > 0 {
		for _, op := range s.Insert {
			if err := ctx.Err(); err != nil {
				return report, infra.WrapErrorStack(err)
			}
			err := l.Insert(op.Index, op.Value)
			r.record(report, StepResult{Op: OpInsert, Index: op.Index, Value: op.Value, OK: err == nil, Err: err})
			if err != nil {
				r.printf("Insert val %d at index %d: failed", op.Value, op.Index)
				continue
			}
			r.printf("Insert val %d at index %d: ok", op.Value, op.Index)
		}
		r.printForward(l)
	}

	if len(s.Remove) > 0 {
		for _, i := range s.Remove {
			if err := ctx.Err(); err != nil {
				return report, infra.WrapErrorStack(err)
			}
			v, err := l.Remove(i)
			r.record(report, StepResult{Op: OpRemove, Index: i, Value: v, OK: err == nil, Err: err})
			if err != nil {
				r.printf("Remove index %d: failed", i)
				continue
			}
			r.printf("Remove index %d: val %d", i, v)
		}
		r.printForward(l)
	}

	report.Final = l.Values()
	l.Clear()
	report.FinalLen = l.Len()
	r.record(report, StepResult{Op: OpClear, OK: l.Len() == 0})
	r.printf("Linked list length: %d", l.Len())

	r.logger.Info("scenario done",
		zap.String("name", s.Name),
		zap.String("before clear", fmt.Sprint(report.Final)),
		zap.Int("failed steps", report.Failed()),
	)
	return report, nil
}
