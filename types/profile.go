package types

// Profile is a field reduced to a function of depth alone
type Profile struct {
	Label  string
	Values []float64
}

/*
Series is one curve handed to a plotting sink: a profile paired with its depth coordinate.
Source, Field and Window record where it came from; Snapshot is set instead of Window for
single-time profiles, with Window.Start holding the time index.
*/
type Series struct {
	Label    string    `msgpack:"label"`
	Depth    []float64 `msgpack:"depth"`
	Values   []float64 `msgpack:"values"`
	Source   string    `msgpack:"source"`
	Field    string    `msgpack:"field"`
	Window   Window    `msgpack:"window"`
	Snapshot bool      `msgpack:"snapshot"`
}

func NewSeries(p Profile, depth []float64) Series {
	return Series{
		Label:  p.Label,
		Depth:  depth,
		Values: p.Values,
	}
}

func (s Series) Len() int {
	return len(s.Values)
}
