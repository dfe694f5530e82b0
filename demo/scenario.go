package demo

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/safeopen"
	"gopkg.in/yaml.v3"

	"github.com/benz9527/dlist/lib/infra"
)

//go:embed scenario.yaml
var defaultScenario []byte

var ErrEmptyScenario = errors.New("scenario has no values")

// InsertOp inserts Value so that it ends up at Index.
type InsertOp struct {
	Index int64 `yaml:"index"`
	Value int   `yaml:"value"`
}

// Scenario is the fixture driven by the Runner.
// Steps are executed in field order.
type Scenario struct {
	Name     string     `yaml:"name"`
	Values   []int      `yaml:"values"`
	Prepend  []int      `yaml:"prepend"`
	Contains []int      `yaml:"contains"`
	Get      []int64    `yaml:"get"`
	Insert   []InsertOp `yaml:"insert"`
	Remove   []int64    `yaml:"remove"`
}

func (s *Scenario) Validate() error {
	if s == nil || len(s.Values) == 0 {
		return infra.WrapErrorStack(ErrEmptyScenario)
	}
	return nil
}

// ParseScenario decodes a YAML scenario, unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, infra.WrapErrorStack(ErrEmptyScenario)
		}
		return nil, infra.WrapErrorStackWithMessage(err, "[demo] decode scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func DefaultScenario() (*Scenario, error) {
	return ParseScenario(defaultScenario)
}

// LoadScenario reads the scenario at path, an empty path means the embedded default.
// The file is opened beneath its own directory, so the name cannot escape it.
func LoadScenario(path string) (*Scenario, error) {
	if len(path) == 0 {
		return DefaultScenario()
	}
	dir, name := filepath.Split(filepath.Clean(path))
	if len(dir) == 0 {
		dir = "."
	}
	f, err := safeopen.OpenBeneath(dir, name)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("[demo] open scenario %s", path))
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("[demo] read scenario %s", path))
	}
	return ParseScenario(data)
}
