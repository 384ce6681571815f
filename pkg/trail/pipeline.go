package trail

import(
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/abworrall/starclean/pkg/emath"
)

const(
	StageLoad      = "load"
	StageTrace     = "trace"
	StageLegacy    = "legacy"
	StagePrepare   = "prepare"
	StageComposite = "composite"
	StageAnalyze   = "analyze"
)

// A Pipeline takes a stack of aligned frames through trail removal.
// Each stage's output is written to disk as soon as it exists, so a
// later failure leaves the earlier files in place.
type Pipeline struct {
	Config

	Stack      FrameStack
	Skipped  []Skip

	Trace      Frame       // Max stack, trail as visible as it gets
	Legacy     Frame       // Trace with the trail painted black
	Prepared []Frame       // Each frame, with its trail burned into alpha
	Clean      Composite
	Analysis   Analysis

	DebugPixels []image.Point
}

func NewPipeline() Pipeline {
	return Pipeline{
		Config: NewConfig(),
		Stack:  NewFrameStack(),
	}
}

func (p Pipeline)String() string {
	str := fmt.Sprintf("Pipeline %s", p.Stack)
	for _, s := range p.Skipped {
		str += fmt.Sprintf("  %s\n", s)
	}
	return str
}

// Run does every stage after loading. If the frames were not loaded
// yet, they are read from Config.InputDir.
func (p *Pipeline)Run() error {
	if err := p.Config.Validate(); err != nil {
		return &StageError{StageLoad, err}
	}

	if p.Stack.Len() == 0 && p.Config.InputDir != "" {
		if err := p.LoadFilesAndDirs(p.Config.InputDir); err != nil {
			return &StageError{StageLoad, err}
		}
	}
	if err := p.Stack.Validate(); err != nil {
		return &StageError{StageLoad, err}
	}
	log.Printf("Loaded %d frames, skipped %d\n", p.Stack.Len(), len(p.Skipped))
	if p.Config.Verbosity > 0 {
		log.Printf("%s", p)
	}

	stages := []struct{
		name string
		f    func() error
	}{
		{StageTrace,     p.BuildTrace},
		{StageLegacy,    p.BuildLegacy},
		{StagePrepare,   p.PrepareFrames},
		{StageComposite, p.Composite},
	}
	for _, s := range stages {
		if err := s.f(); err != nil {
			return &StageError{s.name, err}
		}
	}

	if err := p.Analyze(); err != nil {
		if errors.Is(err, ErrNoArtifactDetected) {
			log.Printf("WARNING: %v; if the trail is another color or very dim, adjust the evaluation band\n", err)
			return nil
		}
		return &StageError{StageAnalyze, err}
	}

	return nil
}

// BuildTrace max-stacks the raw frames.
func (p *Pipeline)BuildTrace() error {
	trace, err := MaxStack(p.Stack.Frames)
	if err != nil {
		return err
	}
	trace.LoadFilename = p.Config.OutputPath(p.Config.TraceFilename)
	p.Trace = trace

	return p.write(p.Trace, p.Trace.LoadFilename)
}

// BuildLegacy paints the trail in the trace image black.
func (p *Pipeline)BuildLegacy() error {
	m, err := TrailMask(p.Trace, p.Config.Band, p.Config.LegacyDilationRadius)
	if err != nil {
		return err
	}
	if p.Config.Verbosity > 0 {
		if hist, err := HueHistogram(p.Trace, m); err == nil {
			log.Printf("Trace hue histogram of flagged pixels: %v\n", hist)
		}
	}

	legacy, err := BlackOut(p.Trace, m)
	if err != nil {
		return err
	}
	legacy.LoadFilename = p.Config.OutputPath(p.Config.LegacyFilename)
	p.Legacy = legacy
	log.Printf("Legacy removal blacked out %d pixels\n", m.Count())

	return p.write(p.Legacy, p.Legacy.LoadFilename)
}

type prepareJob struct {
	// Inputs for the job
	Index    int
	F        Frame

	// Output
	Prepared Frame
	Mask     emath.Mask
	Err      error
}

// PrepareFrames extracts and dilates each frame's trail mask, and burns
// it into that frame's alpha channel. Frames are independent, so this
// runs on a pool of goroutines; the results keep stack order.
func (p *Pipeline)PrepareFrames() error {
	frames := p.Stack.Frames
	var wg sync.WaitGroup
	jobsChan    := make(chan prepareJob, len(frames))
	resultsChan := make(chan prepareJob, len(frames))

	// Kick off worker pool
	for i:=0; i<p.Config.Workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				job.Mask, job.Err = TrailMask(job.F, p.Config.Band, p.Config.DilationRadius)
				if job.Err == nil {
					job.Prepared, job.Err = BurnMask(job.F, job.Mask)
				}
				resultsChan<- job
			}
		}()
	}

	// Feed in jobs
	for i, f := range frames {
		jobsChan<- prepareJob{Index: i, F: f}
	}

	close(jobsChan)
	wg.Wait()
	close(resultsChan)

	p.Prepared = make([]Frame, len(frames))
	masks := make([]emath.Mask, len(frames))
	for result := range resultsChan {
		if result.Err != nil {
			return fmt.Errorf("prepare '%s': %w", result.F.Filename(), result.Err)
		}
		p.Prepared[result.Index] = result.Prepared
		masks[result.Index] = result.Mask
	}

	for i, f := range p.Prepared {
		if p.Config.Verbosity > 0 {
			log.Printf("Prepared %s: %d pixels masked\n", f.Filename(), masks[i].Count())
		}
		base := strings.TrimSuffix(f.Filename(), filepath.Ext(f.Filename()))
		if p.Config.WritePrepared {
			if err := p.write(f, p.Config.OutputPath(base + "_prepared.png")); err != nil {
				return err
			}
		}
		if p.Config.Verbosity > 1 {
			title := fmt.Sprintf("%s: %d masked, radius %d", f.Filename(), masks[i].Count(), p.Config.DilationRadius)
			if err := masks[i].ToImg(title, p.Config.OutputPath(base + "_mask.png")); err != nil {
				return err
			}
		}
	}

	return nil
}

// Composite stacks the prepared frames with the configured compositor.
func (p *Pipeline)Composite() error {
	compositor, err := p.Config.GetCompositor()
	if err != nil {
		return err
	}

	log.Printf("Compositing %d frames (%s, background floor %d)\n",
		len(p.Prepared), p.Config.Compositor, p.Config.BackgroundFloor)
	clean, err := compositor(p.Prepared, p.Config.BackgroundFloor)
	if err != nil {
		return err
	}
	clean.LoadFilename = p.Config.OutputPath(p.Config.CleanFilename)
	p.Clean = clean

	if n := clean.NonBlackCount(); n == 0 {
		log.Printf("WARNING: the composite is entirely black; try a lower background floor, or check the trail mask isn't covering the frames\n")
	} else {
		log.Printf("Composite has %d non-black pixels\n", n)
	}
	if summary, err := CoverageSummary(clean); err != nil {
		log.Printf("WARNING: %v\n", err)
	} else {
		log.Printf("%s\n", summary)
	}
	if p.Config.Verbosity > 0 {
		log.Printf("coverage grid %s\n", clean.Coverage.Stats())
	}

	for _, pt := range p.DebugPixels {
		if pt.In(clean.Bounds()) {
			log.Printf("%s", InspectPixel(p.Prepared, p.Config.BackgroundFloor, pt.X, pt.Y))
		}
	}

	if err := p.write(p.Clean.Frame, p.Clean.LoadFilename); err != nil {
		return err
	}

	if p.Config.HDRFilename != "" {
		filename := p.Config.OutputPath(p.Config.HDRFilename)
		if err := WriteHDR(p.Clean.HDR, filename); err != nil {
			return fmt.Errorf("write hdr: %v", err)
		}
		log.Printf("HDR composite written to %s\n", filename)
	}

	if p.Config.CoverageFilename != "" {
		filename := p.Config.OutputPath(p.Config.CoverageFilename)
		title := fmt.Sprintf("samples per pixel, %d frames", clean.NumFrames)
		if err := clean.Coverage.ToImg(title, filename); err != nil {
			return err
		}
	}

	return nil
}

// Analyze scores the legacy and clean images against the trace.
func (p *Pipeline)Analyze() error {
	a, err := Analyze(p.Trace, []Frame{p.Legacy, p.Clean.Frame}, p.Config.EvaluationBand)
	if err != nil {
		return err
	}
	p.Analysis = a
	log.Printf("%s", a)
	return nil
}

func (p *Pipeline)write(f Frame, filename string) error {
	if err := WriteImage(f, filename); err != nil {
		return fmt.Errorf("write '%s': %v", filename, err)
	}
	log.Printf("Wrote %s\n", filename)
	return nil
}
