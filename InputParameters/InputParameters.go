package InputParameters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/mrivkah3/convective-adjustment/readfiles"
	"github.com/mrivkah3/convective-adjustment/types"
	"github.com/mrivkah3/convective-adjustment/utils"
)

const (
	DefaultDatasetPath   = "analysis/analysis_s1.h5"
	DefaultFieldTemplate = "{quantity} x={x}"
	DefaultOutput        = "plots/{quantity}_x={x}.png"
)

// Source is one simulation run directory and its legend label
type Source struct {
	Dir   string `json:"Dir"`
	Label string `json:"Label"`
}

func (s Source) Name() string {
	if len(s.Label) != 0 {
		return s.Label
	}
	return filepath.Base(filepath.Clean(s.Dir))
}

type PlotParameters struct {
	Title  string    `json:"Title"`
	XLabel string    `json:"XLabel"`
	YLabel string    `json:"YLabel"`
	XLim   []float64 `json:"XLim"`
	YLim   []float64 `json:"YLim"`
	Output string    `json:"Output"`
	Width  float64   `json:"Width"`  // inches
	Height float64   `json:"Height"` // inches
	CSV    bool      `json:"CSV"`    // also write <Output>.csv
	SQLite string    `json:"SQLite"` // archive database, empty to skip
}

// Parameters obtained from the YAML experiment file
type Experiment struct {
	Title         string               `json:"Title"`
	Quantity      string               `json:"Quantity"`
	FieldTemplate string               `json:"FieldTemplate"`
	Field         string               `json:"Field"`
	XPositions    []string             `json:"XPositions"`
	DatasetPath   string               `json:"DatasetPath"`
	Scales        readfiles.ScaleNames `json:"Scales"`
	Sources       []Source             `json:"Sources"`
	Windows       []string             `json:"Windows"`
	Snapshots     []int                `json:"Snapshots"`
	WindowLabel   string               `json:"WindowLabel"`
	ModeIndex     int                  `json:"ModeIndex"`
	Parallel      bool                 `json:"Parallel"`
	Plot          PlotParameters       `json:"Plot"`
}

// FieldSpec names one figure: the dataset field to read and the horizontal position it was sampled at
type FieldSpec struct {
	X    string
	Name string
}

func (ex *Experiment) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ex); err != nil {
		return
	}
	ex.Defaults()
	return ex.Validate()
}

func (ex *Experiment) Defaults() {
	if len(ex.DatasetPath) == 0 {
		ex.DatasetPath = DefaultDatasetPath
	}
	if len(ex.FieldTemplate) == 0 {
		ex.FieldTemplate = DefaultFieldTemplate
	}
	if len(ex.WindowLabel) == 0 && len(ex.Windows) > 1 {
		ex.WindowLabel = "index"
	}
	ex.Scales = ex.Scales.Merge(readfiles.DefaultScales)
	if len(ex.Plot.Output) == 0 {
		ex.Plot.Output = DefaultOutput
	}
	if len(ex.Plot.XLabel) == 0 {
		ex.Plot.XLabel = ex.Quantity
	}
	if len(ex.Plot.YLabel) == 0 {
		ex.Plot.YLabel = "z"
	}
	if ex.Plot.Width == 0 {
		ex.Plot.Width = 6
	}
	if ex.Plot.Height == 0 {
		ex.Plot.Height = 4
	}
}

func (ex *Experiment) Validate() error {
	var (
		errs []string
	)
	addErr := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}
	if len(ex.Sources) == 0 {
		addErr("at least one entry in Sources is required")
	}
	for i, s := range ex.Sources {
		if len(strings.TrimSpace(s.Dir)) == 0 {
			addErr("Sources[%d] has no Dir", i)
		}
	}
	if len(ex.Windows) == 0 && len(ex.Snapshots) == 0 {
		addErr("at least one entry in Windows or Snapshots is required")
	}
	for _, w := range ex.Windows {
		if _, _, _, err := utils.ParseSlice(w, 0); err != nil {
			addErr("Windows: %v", err)
		}
	}
	if ex.ModeIndex < 0 {
		addErr("ModeIndex %d is negative", ex.ModeIndex)
	}
	if _, err := types.NewLabelStyle(ex.WindowLabel); err != nil {
		addErr("WindowLabel: %v", err)
	}
	if len(ex.Field) == 0 {
		if len(ex.XPositions) == 0 {
			addErr("either Field or XPositions is required")
		}
		if strings.Contains(ex.FieldTemplate, "{quantity}") && len(ex.Quantity) == 0 {
			addErr("FieldTemplate %q needs Quantity", ex.FieldTemplate)
		}
	}
	if len(ex.Plot.XLim) != 0 && len(ex.Plot.XLim) != 2 {
		addErr("Plot.XLim needs two values, have %v", ex.Plot.XLim)
	}
	if len(ex.Plot.YLim) != 0 && len(ex.Plot.YLim) != 2 {
		addErr("Plot.YLim needs two values, have %v", ex.Plot.YLim)
	}
	if len(errs) != 0 {
		return fmt.Errorf("invalid experiment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (ex *Experiment) LabelStyle() (ls types.LabelStyle) {
	ls, _ = types.NewLabelStyle(ex.WindowLabel)
	return
}

// FieldSpecs lists the figures to produce, in configuration order
func (ex *Experiment) FieldSpecs() (fs []FieldSpec) {
	if len(ex.Field) != 0 {
		return []FieldSpec{{Name: ex.Field}}
	}
	for _, x := range ex.XPositions {
		fs = append(fs, FieldSpec{X: x, Name: ex.Expand(ex.FieldTemplate, x)})
	}
	return
}

// Expand substitutes {quantity} and {x} in a name template
func (ex *Experiment) Expand(tmpl, x string) string {
	return strings.NewReplacer("{quantity}", ex.Quantity, "{x}", x).Replace(tmpl)
}

func (ex *Experiment) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ex.Title)
	fmt.Printf("[%s]\t\t\t= Quantity\n", ex.Quantity)
	for _, fs := range ex.FieldSpecs() {
		fmt.Printf("[%s]\t\t= Field\n", fs.Name)
	}
	fmt.Printf("[%s]\t= Dataset Path\n", ex.DatasetPath)
	fmt.Printf("%v\t\t= Windows\n", ex.Windows)
	if len(ex.Snapshots) != 0 {
		fmt.Printf("%v\t\t= Snapshots\n", ex.Snapshots)
	}
	fmt.Printf("[%d]\t\t\t\t= Mode Index\n", ex.ModeIndex)
	for i, s := range ex.Sources {
		fmt.Printf("Sources[%d] = %s (%s)\n", i, s.Dir, s.Name())
	}
	fmt.Printf("[%s]\t= Output\n", ex.Plot.Output)
}
