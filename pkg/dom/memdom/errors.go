package memdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/retain/pkg/dom"
)

// InjectedError is returned by calls configured to fail with FailOn.
type InjectedError struct {
	Op dom.Op
}

func (e *InjectedError) Error() string {
	return fmt.Sprintf("memdom: injected failure for %s", e.Op)
}

func errInjected(op dom.Op) error {
	return &InjectedError{Op: op}
}

func handleString(h dom.Handle) string {
	return strconv.FormatUint(uint64(h), 10)
}
