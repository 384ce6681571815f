package main

import(
	"flag"
	"log"
	"os"

	"github.com/abworrall/starclean/pkg/trail"
)

var(
	fVerbosity int
	fOutputDir string
	fBand string
	fEvalBand string
	fRadius int
	fLegacyRadius int
	fFloor int
	fCompositor string
	fHDR string
	fCoverage string
	fPrepared bool
	fWorkers int
)

func init() {
	flag.IntVar(&fVerbosity, "v", -1, "how verbose to get")
	flag.StringVar(&fOutputDir, "o", "", "directory for output images")
	flag.StringVar(&fBand, "band", "", "trail color, OpenCV HSV units 'h,s,v:h,s,v' (e.g. 30,80,80:90,255,255)")
	flag.StringVar(&fEvalBand, "evalband", "", "trail color used when scoring, same format as -band")
	flag.IntVar(&fRadius, "radius", -1, "dilation radius for the trail mask (5x5 kernel == 2)")
	flag.IntVar(&fLegacyRadius, "legacyradius", -1, "dilation radius for the legacy blackout mask")
	flag.IntVar(&fFloor, "floor", -1, "a pixel with all channels below this is background, and ignored")
	flag.StringVar(&fCompositor, "compositor", "", "how to stack the frames: median, mean, max")
	flag.StringVar(&fHDR, "hdr", "", "also write the unrounded composite to this .hdr file")
	flag.StringVar(&fCoverage, "coverage", "", "also write a samples-per-pixel image to this file")
	flag.BoolVar(&fPrepared, "prepared", false, "write each frame with its trail made transparent")
	flag.IntVar(&fWorkers, "workers", 0, "how many frames to mask concurrently")
	flag.Parse()

	log.Printf("starclean starting\n")
}

func main() {
	p := trail.NewPipeline()
	if err := p.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	// Override the config file with command line args, if relevant
	if fVerbosity >= 0 { p.Config.Verbosity = fVerbosity }
	if fOutputDir != "" { p.Config.OutputDir = fOutputDir }
	if fRadius >= 0 { p.Config.DilationRadius = fRadius }
	if fLegacyRadius >= 0 { p.Config.LegacyDilationRadius = fLegacyRadius }
	if fFloor >= 0 { p.Config.BackgroundFloor = fFloor }
	if fCompositor != "" { p.Config.Compositor = fCompositor }
	if fHDR != "" { p.Config.HDRFilename = fHDR }
	if fCoverage != "" { p.Config.CoverageFilename = fCoverage }
	if fWorkers > 0 { p.Config.Workers = fWorkers }
	if fPrepared { p.Config.WritePrepared = true }

	if fBand != "" {
		band, err := trail.ParseColorBandCV(fBand)
		if err != nil {
			log.Fatal(err)
		}
		p.Config.Band = band
	}
	if fEvalBand != "" {
		band, err := trail.ParseColorBandCV(fEvalBand)
		if err != nil {
			log.Fatal(err)
		}
		p.Config.EvaluationBand = band
	}

	if p.Config.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", p.Config.AsYaml())
	}

	if err := p.Run(); err != nil {
		log.Printf("starclean failed: %v\n", err)
		os.Exit(1)
	}

	log.Printf("starclean done\n")
}
