package readfiles

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/mrivkah3/convective-adjustment/types"
)

type fileDataset struct {
	path          string
	names         ScaleNames
	root          api.Group
	tasks, scales api.Group
}

// Open reads an HDF5 analysis file, or a NetCDF export of one, using the default scale names
func Open(path string) (Dataset, error) {
	return OpenWith(path, DefaultScales)
}

func NewOpener(names ScaleNames) Opener {
	names = names.Merge(DefaultScales)
	return func(path string) (Dataset, error) {
		return OpenWith(path, names)
	}
}

func OpenWith(path string, names ScaleNames) (ds Dataset, err error) {
	var (
		fd = &fileDataset{path: path, names: names.Merge(DefaultScales)}
	)
	if _, err = os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return
	}
	if fd.root, err = netcdf.Open(path); err != nil {
		err = fmt.Errorf("unable to open %s: %w", path, err)
		return
	}
	// Flat files (NetCDF exports) keep everything in the root group
	fd.tasks, fd.scales = fd.root, fd.root
	if hasName(fd.root.ListSubgroups(), fd.names.TaskGroup) {
		if fd.tasks, err = fd.root.GetGroup(fd.names.TaskGroup); err != nil {
			fd.root.Close()
			err = fmt.Errorf("unable to open group %s in %s: %w", fd.names.TaskGroup, path, err)
			return
		}
	}
	if hasName(fd.root.ListSubgroups(), fd.names.ScaleGroup) {
		if fd.scales, err = fd.root.GetGroup(fd.names.ScaleGroup); err != nil {
			fd.root.Close()
			err = fmt.Errorf("unable to open group %s in %s: %w", fd.names.ScaleGroup, path, err)
			return
		}
	}
	ds = fd
	return
}

func (fd *fileDataset) Fields() (names []string) {
	names = fd.tasks.ListVariables()
	sort.Strings(names)
	return
}

func (fd *fileDataset) Field(name string) (f *types.TimeSeriesField, err error) {
	var (
		v              *api.Variable
		data           []float64
		time, depth    []float64
		nt, nm, nd     int
		dims           [3]string
		timeCandidates []string
	)
	if !hasName(fd.tasks.ListVariables(), name) {
		err = fmt.Errorf("%w: %q in %s", ErrFieldNotFound, name, fd.path)
		return
	}
	if v, err = fd.tasks.GetVariable(name); err != nil {
		err = fmt.Errorf("unable to read %q in %s: %w", name, fd.path, err)
		return
	}
	if data, nt, nm, nd, err = Flatten3(v.Values); err != nil {
		err = fmt.Errorf("field %q in %s: %w", name, fd.path, err)
		return
	}
	copy(dims[:], v.Dimensions)
	timeCandidates = []string{fd.names.Time, dims[0]}
	if time = fd.coordinate(nt, timeCandidates, ""); time == nil {
		err = fmt.Errorf("%w: no time scale of length %d for %q in %s", ErrFieldNotFound, nt, name, fd.path)
		return
	}
	if depth = fd.coordinate(nd, []string{dims[2]}, fd.names.Depth); depth == nil {
		err = fmt.Errorf("%w: no depth scale of length %d for %q in %s", ErrFieldNotFound, nd, name, fd.path)
		return
	}
	return types.NewTimeSeriesField(name, nt, nm, nd, data, time, depth)
}

/*
coordinate returns the first 1-D variable of length n found by exact name in the scale group and
then the root group, and failing that the first scale whose name starts with prefix.
*/
func (fd *fileDataset) coordinate(n int, candidates []string, prefix string) (c []float64) {
	var (
		groups = []api.Group{fd.scales, fd.root}
	)
	for _, name := range candidates {
		if len(name) == 0 {
			continue
		}
		for _, g := range groups {
			if c = readScale(g, name, n); c != nil {
				return
			}
		}
	}
	if len(prefix) == 0 {
		return
	}
	for _, g := range groups {
		names := g.ListVariables()
		sort.Strings(names)
		for _, name := range names {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if c = readScale(g, name, n); c != nil {
				return
			}
		}
	}
	return
}

func readScale(g api.Group, name string, n int) (c []float64) {
	var (
		v   *api.Variable
		err error
	)
	if !hasName(g.ListVariables(), name) {
		return
	}
	if v, err = g.GetVariable(name); err != nil {
		return
	}
	if c, err = Flatten1(v.Values); err != nil || len(c) != n {
		return nil
	}
	return
}

func (fd *fileDataset) Close() error {
	fd.root.Close()
	return nil
}

func hasName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
