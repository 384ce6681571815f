package trail

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

var(
	FrameExtensions = map[string]bool{".png":true, ".jpg":true, ".jpeg":true, ".tif":true, ".tiff":true}
)

func isFrameFile(filename string) bool {
	return FrameExtensions[strings.ToLower(filepath.Ext(filename))]
}

// LoadFilesAndDirs loads frames from files, and from the (top level)
// contents of directories. A .yaml file replaces the config. Files that
// fail to decode are recorded in p.Skipped and loading carries on; any
// other error (e.g. a missing path) stops the load.
func (p *Pipeline)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v: %w", arg, err, ErrInvalidInput)

		case item.IsDir():
			frames, skips, err := LoadDir(arg, p.Config.Verbosity)
			if err != nil {
				return err
			}
			for _, f := range frames {
				p.Stack.Add(f)
			}
			p.Skipped = append(p.Skipped, skips...)

		default: // is a file, load it
			if err := p.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (p *Pipeline)loadFile(filename string) error {
	switch {
	case strings.ToLower(filepath.Ext(filename)) == ".yaml":
		cfg, err := LoadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %w", filename, err)
		}
		p.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)

	case isFrameFile(filename):
		f, err := LoadFrame(filename)
		if err != nil {
			p.skip(filename, err)
			return nil
		}
		p.Stack.Add(f)
	}

	return nil
}

func (p *Pipeline)skip(filename string, err error) {
	s := Skip{Filename: filename, Err: err}
	log.Printf("WARNING: %s\n", s)
	p.Skipped = append(p.Skipped, s)
}

// LoadDir decodes every recognised image directly inside `dir`, in
// filename order. Subdirectories are not visited.
func LoadDir(dir string, verbosity int) ([]Frame, []Skip, error) {
	contents, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		return nil, nil, fmt.Errorf("readdir %s: %v: %w", dir, err, ErrInvalidInput)
	}

	frames := []Frame{}
	skips := []Skip{}
	for _, content := range contents {
		filename := filepath.Join(dir, content.Name())
		if content.IsDir() || !isFrameFile(filename) {
			if verbosity > 1 {
				log.Printf("LoadDir: ignoring %s\n", filename)
			}
			continue
		}

		f, err := LoadFrame(filename)
		if err != nil {
			s := Skip{Filename: filename, Err: err}
			log.Printf("WARNING: %s\n", s)
			skips = append(skips, s)
			continue
		}
		if verbosity > 0 {
			log.Printf("LoadDir: %s\n", f)
		}
		frames = append(frames, f)
	}

	return frames, skips, nil
}

// LoadFrame decodes a single image file. All failures wrap ErrDecodeFailure.
func LoadFrame(filename string) (Frame, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return Frame{}, fmt.Errorf("open+r img '%s': %v: %w", filename, err, ErrDecodeFailure)
	}
	defer reader.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		img, err = tiff.Decode(reader)
	default:
		img, _, err = image.Decode(reader)
	}
	if err != nil {
		return Frame{}, fmt.Errorf("decoding '%s': %v: %w", filename, err, ErrDecodeFailure)
	}

	f := NewFrame(filename, img)
	f.CapturedAt = captureTime(filename)
	return f, nil
}

// captureTime is best effort; PNGs and stripped JPEGs have no EXIF.
func captureTime(filename string) time.Time {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return time.Time{}
	}

	reader, err := os.Open(filename)
	if err != nil {
		return time.Time{}
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return time.Time{}
	}
	t, err := ex.DateTime()
	if err != nil {
		return time.Time{}
	}
	return t
}

// WritePNG creates any missing parent directories.
func WritePNG(img image.Image, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("mkdir for '%s': %v", filename, err)
	}
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteImage picks the encoder from the extension: .tif/.tiff, else PNG.
func WriteImage(img image.Image, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			return fmt.Errorf("mkdir for '%s': %v", filename, err)
		}
		writer, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("open+w '%s': %v", filename, err)
		}
		defer writer.Close()
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return WritePNG(img, filename)
	}
}
