package mock

import "github.com/lawcorpus/lexscan"

var _ lexscan.IndexEngine = (*IndexEngine)(nil)

// IndexEngine is a mock implementation of lexscan.IndexEngine.
type IndexEngine struct {
	BeginFn   func(fields []string) error
	AddFn     func(ref string, record map[string]string) error
	FinishFn  func() error
	AbortFn   func() error
	NameFn    func() string
	VersionFn func() string
}

func (e *IndexEngine) Begin(fields []string) error {
	return e.BeginFn(fields)
}

func (e *IndexEngine) Add(ref string, record map[string]string) error {
	return e.AddFn(ref, record)
}

func (e *IndexEngine) Finish() error {
	return e.FinishFn()
}

func (e *IndexEngine) Abort() error {
	return e.AbortFn()
}

func (e *IndexEngine) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

func (e *IndexEngine) Version() string {
	if e.VersionFn == nil {
		return "0.0.0"
	}
	return e.VersionFn()
}
