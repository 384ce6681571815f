package main

import(
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abworrall/starclean/pkg/trail"
)

var(
	fBand string
	fDiffDir string
)

func init() {
	flag.StringVar(&fBand, "band", "30,40,40:90,255,255", "trail color, OpenCV HSV units 'h,s,v:h,s,v'")
	flag.StringVar(&fDiffDir, "diff", "", "if set, write a diff-<candidate>.png per candidate into this dir")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: trailcompare [-band h,s,v:h,s,v] reference.png candidate.png [candidate.png ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
}

func main() {
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(2)
	}

	band, err := trail.ParseColorBandCV(fBand)
	if err != nil {
		log.Fatal(err)
	}

	frames := []trail.Frame{}
	for _, filename := range flag.Args() {
		f, err := trail.LoadFrame(filename)
		if err != nil {
			log.Fatal(err)
		}
		frames = append(frames, f)
	}

	a, err := trail.Analyze(frames[0], frames[1:], band)
	if errors.Is(err, trail.ErrNoArtifactDetected) {
		log.Printf("WARNING: %v\n", err)
		log.Printf("If the trail is another color or very dim, adjust -band\n")
		return
	} else if err != nil {
		log.Fatal(err)
	}

	fmt.Print(a)

	if fDiffDir != "" {
		if err := os.MkdirAll(fDiffDir, 0755); err != nil {
			log.Fatal(err)
		}
		if err := trail.WriteDiffs(a, frames[0], frames[1:], fDiffDir); err != nil {
			log.Fatal(err)
		}
	}
}
