package trail

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
inputdir: ./frames
outputdir: ./out
dilationradius: 2
backgroundfloor: 25
compositor: median
band:
  huemin: 60
  huemax: 180
  satmin: 0.3137
  satmax: 1
  valmin: 0.3137
  valmax: 1
  cvunits: true   # round pixels to OpenCV units before comparing

*/

type Config struct {
	Verbosity            int

	InputDir             string
	OutputDir            string
	TraceFilename        string   // max-stack image, trail fully visible
	LegacyFilename       string   // trace with the trail blacked out
	CleanFilename        string   // the robust composite
	HDRFilename          string   // optional, unrounded composite as Radiance .hdr
	CoverageFilename     string   // optional, greyscale count of samples used per pixel
	WritePrepared        bool     // write each frame with its trail burned into alpha

	Band                 ColorBand  // what the trail looks like, used for removal
	EvaluationBand       ColorBand  // usually more sensitive than Band, used for scoring
	DilationRadius       int        // square element of side 2r+1
	LegacyDilationRadius int
	BackgroundFloor      int        // a pixel with all channels below this is empty sky
	Compositor           string     // median, mean, max
	Workers              int
}

// The defaults are the green trail settings from the first capture run.
func NewConfig() Config {
	band, _ := NewColorBandCV([3]int{30, 80, 80}, [3]int{90, 255, 255})
	evalBand, _ := NewColorBandCV([3]int{30, 40, 40}, [3]int{90, 255, 255})

	return Config{
		OutputDir:        ".",
		TraceFilename:    "trace.png",
		LegacyFilename:   "legacy.png",
		CleanFilename:    "clean.png",
		Band:             band,
		EvaluationBand:   evalBand,
		DilationRadius:   2,
		BackgroundFloor:  25,
		Compositor:       "median",
		Workers:          runtime.NumCPU(),
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("config yaml: %v", err)
	}
	return c, c.Validate()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate does sanity checks; everything downstream assumes a valid config.
func (c Config)Validate() error {
	if err := c.Band.Validate(); err != nil {
		return fmt.Errorf("config band: %w", err)
	}
	if err := c.EvaluationBand.Validate(); err != nil {
		return fmt.Errorf("config evaluationband: %w", err)
	}
	if c.DilationRadius < 0 || c.LegacyDilationRadius < 0 {
		return fmt.Errorf("config dilation radius %d/%d must be >= 0: %w",
			c.DilationRadius, c.LegacyDilationRadius, ErrInvalidInput)
	}
	if c.BackgroundFloor < 0 || c.BackgroundFloor > 256 {
		return fmt.Errorf("config background floor %d outside [0,256]: %w", c.BackgroundFloor, ErrInvalidInput)
	}
	if _, err := c.GetCompositor(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("config workers %d must be >= 1: %w", c.Workers, ErrInvalidInput)
	}
	return nil
}

// A CompositorFunc turns a stack of prepared frames into one image.
type CompositorFunc func(frames []Frame, floor int) (Composite, error)

func (c Config)GetCompositor() (CompositorFunc, error) {
	switch c.Compositor {
	case "median": return RobustStack, nil
	case "mean":   return MeanStack, nil
	case "max":    return maxStackComposite, nil
	default:
		return nil, fmt.Errorf("no Compositor named '%s': %w", c.Compositor, ErrInvalidInput)
	}
}

// OutputPath places a configured filename inside OutputDir, unless it is absolute.
func (c Config)OutputPath(filename string) string {
	if filename == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.OutputDir, filename)
}
