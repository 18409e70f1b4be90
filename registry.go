package redshiftlineage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

type ExtractorFactory func(op *Operator, optFns ...func(*ExtractorOptions)) Extractor

var (
	registryMu sync.RWMutex
	extractors = map[string]ExtractorFactory{}
)

func init() {
	Register(RedshiftSQLOperatorClassnames(), func(op *Operator, optFns ...func(*ExtractorOptions)) Extractor {
		return NewRedshiftSQLExtractor(op, optFns...)
	})
}

// Register makes an extractor available for the given operator classnames.
// It panics if f is nil or a classname is already registered.
func Register(classnames []string, f ExtractorFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if f == nil {
		panic("redshiftlineage: Register extractor factory is nil")
	}
	for _, classname := range lo.Uniq(classnames) {
		if _, dup := extractors[classname]; dup {
			panic("redshiftlineage: Register called twice for operator " + classname)
		}
		extractors[classname] = f
	}
}

func Lookup(classname string) (ExtractorFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := extractors[classname]
	return f, ok
}

// Classnames returns a sorted list of the registered operator classnames.
func Classnames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	classnames := lo.Keys(extractors)
	sort.Strings(classnames)
	return classnames
}

func NewExtractor(op *Operator, optFns ...func(*ExtractorOptions)) (Extractor, error) {
	if op == nil {
		return nil, fmt.Errorf("operator is nil: %w", ErrUnknownOperator)
	}
	f, ok := Lookup(op.Classname)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op.Classname, ErrUnknownOperator)
	}
	return f(op, optFns...), nil
}
