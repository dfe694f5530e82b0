package demo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/dlist/lib/infra"
	"github.com/benz9527/dlist/lib/list"
	"github.com/benz9527/dlist/xlog"
)

func testLogger(buf *bytes.Buffer) xlog.XLogger {
	return xlog.NewXLogger(
		xlog.WithXLoggerOutput(buf),
		xlog.WithXLoggerEncoder(xlog.JSON),
		xlog.WithXLoggerLevel(xlog.LogLevelDebug),
		xlog.WithXLoggerName("demo-test"),
	)
}

func writeNodes(b *strings.Builder, values []int) {
	for i, v := range values {
		b.WriteString(fmt.Sprintf("Node Index %d, Node Value %d\n", i, v))
	}
}

func defaultScenarioOutput() string {
	b := &strings.Builder{}
	values := lo.RangeFrom(1, 12)
	b.WriteString("Linked list length: 12\n")
	writeNodes(b, values)
	b.WriteString("Reverse traversal check\n")
	for i := len(values) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("Node Index %d, Node Value %d\n", i, values[i]))
	}

	prepended := append([]int{99}, values...)
	writeNodes(b, prepended)
	b.WriteString("Linked List contains val 28: false\n")
	b.WriteString("Linked List contains val 99: true\n")
	b.WriteString("Linked List val 6 at index 6\n")
	b.WriteString("Linked List val 2 at index 2\n")
	b.WriteString("Linked List val at index 15 not found\n")

	b.WriteString("Insert val 42 at index 6: ok\n")
	b.WriteString("Insert val 7 at index 0: ok\n")
	b.WriteString("Insert val 1000 at index 100: failed\n")
	writeNodes(b, []int{7, 99, 1, 2, 3, 4, 5, 42, 6, 7, 8, 9, 10, 11, 12})

	b.WriteString("Remove index 0: val 7\n")
	b.WriteString("Remove index 6: val 42\n")
	b.WriteString("Remove index 13: failed\n")
	writeNodes(b, prepended)

	b.WriteString("Linked list length: 0\n")
	return b.String()
}

func TestRunner_DefaultScenario(t *testing.T) {
	s, err := DefaultScenario()
	require.NoError(t, err)
	require.Equal(t, "default", s.Name)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	r, err := NewRunner(s, out, testLogger(logs))
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, defaultScenarioOutput(), out.String())

	require.Equal(t, "default", report.Scenario)
	require.Equal(t, append([]int{99}, lo.RangeFrom(1, 12)...), report.Final)
	require.Equal(t, int64(0), report.FinalLen)
	// contains 28, get 15, insert at 100, remove 13
	require.Equal(t, 4, report.Failed())

	failed := lo.Filter(report.Steps, func(s StepResult, _ int) bool {
		return !s.OK && s.Err != nil
	})
	require.Len(t, failed, 3)
	for _, f := range failed {
		require.True(t, errors.Is(f.Err, list.ErrInvalidIndex), f.Op)
	}

	stepErr := report.Err()
	require.Error(t, stepErr)
	require.ErrorIs(t, stepErr, list.ErrInvalidIndex)
	es, ok := stepErr.(infra.ErrorStack)
	require.True(t, ok)
	require.Len(t, es.Unwrap(), 3)

	require.Contains(t, logs.String(), "scenario start")
	require.Contains(t, logs.String(), "step failed")
	require.Contains(t, logs.String(), "scenario done")
	require.Contains(t, logs.String(), "errorStack")
}

func TestRunner_StepsOrder(t *testing.T) {
	s := &Scenario{
		Name:     "small",
		Values:   []int{1, 2},
		Contains: []int{2},
		Remove:   []int64{1, 1},
	}
	r, err := NewRunner(s, nil, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	ops := lo.Map(report.Steps, func(s StepResult, _ int) stepOp {
		return s.Op
	})
	require.Equal(t, []stepOp{OpCreate, OpContains, OpRemove, OpRemove, OpClear}, ops)
	require.True(t, report.Steps[2].OK)
	require.Equal(t, 2, report.Steps[2].Value)
	require.False(t, report.Steps[3].OK)
	require.Equal(t, []int{1}, report.Final)
	require.ErrorIs(t, report.Err(), list.ErrInvalidIndex)

	t.Log("no failed step, no error")
	s.Remove = []int64{0}
	report, err = r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.Failed())
	require.NoError(t, report.Err())

	var nilReport *Report
	require.NoError(t, nilReport.Err())
}

func TestRunner_Canceled(t *testing.T) {
	s, err := DefaultScenario()
	require.NoError(t, err)
	out := &bytes.Buffer{}
	r, err := NewRunner(s, out, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := r.Run(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, report)
	require.Len(t, report.Steps, 1)
	require.Equal(t, OpCreate, report.Steps[0].Op)
	require.True(t, strings.HasPrefix(out.String(), "Linked list length: 12\n"))
}

func TestNewRunner_Invalid(t *testing.T) {
	_, err := NewRunner(nil, nil, testLogger(&bytes.Buffer{}))
	require.True(t, errors.Is(err, ErrEmptyScenario))

	_, err = NewRunner(&Scenario{Values: []int{1}}, nil, nil)
	require.Error(t, err)
}

func BenchmarkRunner_DefaultScenario(b *testing.B) {
	s, err := DefaultScenario()
	require.NoError(b, err)
	logger := xlog.NewXLogger(
		xlog.WithXLoggerOutput(&bytes.Buffer{}),
		xlog.WithXLoggerLevel(xlog.LogLevelError),
	)
	r, err := NewRunner(s, nil, logger)
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Run(context.Background())
	}
}
