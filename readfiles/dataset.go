package readfiles

import (
	"errors"

	"github.com/mrivkah3/convective-adjustment/types"
)

var (
	ErrSourceNotFound = errors.New("dataset not found")
	ErrFieldNotFound  = errors.New("field not found")
)

// Dataset is an opened analysis file holding named (time, mode, depth) fields
type Dataset interface {
	Fields() []string
	Field(name string) (*types.TimeSeriesField, error)
	Close() error
}

type Opener func(path string) (Dataset, error)

/*
ScaleNames locates fields and their attached coordinates inside a file. The solver writes each
task under TaskGroup and the dimension scales under ScaleGroup, the time scale under its own name
and the depth scale under a name starting with Depth followed by a basis hash.
*/
type ScaleNames struct {
	TaskGroup  string `json:"TaskGroup"`
	ScaleGroup string `json:"ScaleGroup"`
	Time       string `json:"Time"`
	Depth      string `json:"Depth"`
}

var DefaultScales = ScaleNames{
	TaskGroup:  "tasks",
	ScaleGroup: "scales",
	Time:       "sim_time",
	Depth:      "z",
}

// Merge fills empty names from def
func (sn ScaleNames) Merge(def ScaleNames) ScaleNames {
	if len(sn.TaskGroup) == 0 {
		sn.TaskGroup = def.TaskGroup
	}
	if len(sn.ScaleGroup) == 0 {
		sn.ScaleGroup = def.ScaleGroup
	}
	if len(sn.Time) == 0 {
		sn.Time = def.Time
	}
	if len(sn.Depth) == 0 {
		sn.Depth = def.Depth
	}
	return sn
}
