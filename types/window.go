package types

import (
	"fmt"
	"strings"
)

// Window selects time indices [Start, Stop) every Stride samples, Stride 0 is read as 1
type Window struct {
	Start, Stop, Stride int
}

func NewWindow(start, stop int, strideO ...int) (w Window) {
	w = Window{Start: start, Stop: stop, Stride: 1}
	if len(strideO) > 0 {
		w.Stride = strideO[0]
	}
	return
}

func (w Window) Step() int {
	if w.Stride == 0 {
		return 1
	}
	return w.Stride
}

// Len is the number of indices selected, zero for empty or reversed windows
func (w Window) Len() int {
	var (
		step = w.Step()
	)
	if step < 1 || w.Stop <= w.Start {
		return 0
	}
	return (w.Stop - w.Start + step - 1) / step
}

func (w Window) String() string {
	if w.Step() == 1 {
		return fmt.Sprintf("%d:%d", w.Start, w.Stop)
	}
	return fmt.Sprintf("%d:%d:%d", w.Start, w.Stop, w.Step())
}

type LabelStyle uint8

const (
	LabelIndex LabelStyle = iota
	LabelTime
	LabelNone
)

var LabelStyleNameMap = map[string]LabelStyle{
	"":      LabelNone,
	"none":  LabelNone,
	"index": LabelIndex,
	"time":  LabelTime,
}

func NewLabelStyle(label string) (ls LabelStyle, err error) {
	var (
		ok bool
	)
	if ls, ok = LabelStyleNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown window label style %q, expected index, time or none", label)
	}
	return
}

func (ls LabelStyle) String() string {
	switch ls {
	case LabelIndex:
		return "index"
	case LabelTime:
		return "time"
	default:
		return "none"
	}
}
