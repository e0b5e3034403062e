package errors

import (
	"fmt"
	"runtime"
	"strings"
)

type CallStack struct {
	Stacks []uintptr
}

func getCallStack(skip int, depth int) *CallStack {
	stacks := make([]uintptr, depth)
	n := runtime.Callers(skip+3, stacks)
	return &CallStack{Stacks: stacks[:n]}
}

func (c *CallStack) String() string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(c.Stacks)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
