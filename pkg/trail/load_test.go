package trail

import(
	"bytes"
	"encoding/binary"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrames(t *testing.T, dir string, frames ...Frame) {
	t.Helper()
	for _, f := range frames {
		require.NoError(t, WriteImage(f, filepath.Join(dir, f.LoadFilename)))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir,
		solidFrame("b.png", 3, 2, star),
		solidFrame("a.png", 3, 2, green),
		solidFrame("d.tif", 3, 2, black),
		solidFrame(filepath.Join("sub", "e.png"), 3, 2, black),
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.png"), []byte("not really a png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	frames, skips, err := LoadDir(dir, 2)
	require.NoError(t, err)

	require.Len(t, frames, 3)
	assert.Equal(t, "a.png", frames[0].Filename())
	assert.Equal(t, "b.png", frames[1].Filename())
	assert.Equal(t, "d.tif", frames[2].Filename())
	assert.Equal(t, 3, frames[0].Dx())
	assert.Equal(t, 2, frames[0].Dy())
	assert.Equal(t, [3]uint8{0, 255, 0}, rgb(frames[0], 2, 1))
	assert.Equal(t, [3]uint8{200, 200, 200}, rgb(frames[1], 0, 0))

	require.Len(t, skips, 1)
	assert.Equal(t, filepath.Join(dir, "c.png"), skips[0].Filename)
	assert.ErrorIs(t, skips[0].Err, ErrDecodeFailure)
}

func TestLoadDirMissing(t *testing.T) {
	_, _, err := LoadDir(filepath.Join(t.TempDir(), "nope"), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadFrameFailures(t *testing.T) {
	_, err := LoadFrame(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrDecodeFailure)

	bad := filepath.Join(t.TempDir(), "bad.tif")
	require.NoError(t, os.WriteFile(bad, []byte{1, 2, 3}, 0644))
	_, err = LoadFrame(bad)
	assert.ErrorIs(t, err, ErrDecodeFailure)
}

func TestLoadFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, solidFrame("f2.png", 2, 2, star), solidFrame("f1.png", 2, 2, star))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("nope"), 0644))

	other := t.TempDir()
	writeFrames(t, other, solidFrame("f0.png", 2, 2, star))
	cfgFile := filepath.Join(other, "run.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("backgroundfloor: 40\ncompositor: mean\n"), 0644))

	p := NewPipeline()
	err := p.LoadFilesAndDirs(dir, filepath.Join(other, "f0.png"), cfgFile)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Stack.Len())
	assert.Equal(t, "f0.png", p.Stack.Frames[0].Filename())
	assert.Equal(t, "f2.png", p.Stack.Frames[2].Filename())
	require.Len(t, p.Skipped, 1)
	assert.Equal(t, 40, p.Config.BackgroundFloor)
	assert.Equal(t, "mean", p.Config.Compositor)

	err = p.LoadFilesAndDirs(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFrameStackValidate(t *testing.T) {
	fs := NewFrameStack()
	assert.ErrorIs(t, fs.Validate(), ErrInvalidInput)

	fs = NewFrameStack(solidFrame("b.png", 2, 2, star), solidFrame("a.png", 2, 2, star))
	assert.NoError(t, fs.Validate())
	assert.Equal(t, "a.png", fs.Frames[0].Filename())

	fs.Add(solidFrame("c.png", 2, 3, star))
	assert.ErrorIs(t, fs.Validate(), ErrDimensionMismatch)

	fs = NewFrameStack(solidFrame("z.png", 0, 0, star))
	assert.ErrorIs(t, fs.Validate(), ErrInvalidInput)
}

// jpegWithDateTime encodes f as a JPEG, with an APP1 EXIF segment that
// holds just an IFD0 DateTime tag.
func jpegWithDateTime(t *testing.T, f Frame, dateTime string) []byte {
	t.Helper()

	var img bytes.Buffer
	require.NoError(t, jpeg.Encode(&img, f, &jpeg.Options{Quality: 100}))

	var tiffHdr bytes.Buffer
	le := binary.LittleEndian
	tiffHdr.WriteString("II")
	binary.Write(&tiffHdr, le, uint16(42))
	binary.Write(&tiffHdr, le, uint32(8))    // IFD0 offset
	binary.Write(&tiffHdr, le, uint16(1))    // one entry
	binary.Write(&tiffHdr, le, uint16(0x0132)) // DateTime
	binary.Write(&tiffHdr, le, uint16(2))    // ASCII
	binary.Write(&tiffHdr, le, uint32(len(dateTime)+1))
	binary.Write(&tiffHdr, le, uint32(26))   // value offset, just past this IFD
	binary.Write(&tiffHdr, le, uint32(0))    // no next IFD
	tiffHdr.WriteString(dateTime)
	tiffHdr.WriteByte(0)

	payload := append([]byte("Exif\x00\x00"), tiffHdr.Bytes()...)
	app1 := []byte{0xFF, 0xE1, 0, 0}
	binary.BigEndian.PutUint16(app1[2:], uint16(len(payload)+2))
	app1 = append(app1, payload...)

	raw := img.Bytes()
	out := append([]byte{}, raw[:2]...) // SOI
	out = append(out, app1...)
	return append(out, raw[2:]...)
}

func TestLoadFrameCaptureTime(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "exif.jpg")
	require.NoError(t, os.WriteFile(filename, jpegWithDateTime(t, solidFrame("x", 4, 4, star), "2023:10:14 18:30:05"), 0644))

	f, err := LoadFrame(filename)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Dx())
	assert.Equal(t, 2023, f.CapturedAt.Year())
	assert.Equal(t, time.October, f.CapturedAt.Month())
	assert.Equal(t, 14, f.CapturedAt.Day())
	assert.Equal(t, 18, f.CapturedAt.Hour())
	assert.Equal(t, 5, f.CapturedAt.Second())
	assert.Contains(t, f.String(), "captured 2023-10-14T18:30:05")

	writeFrames(t, dir, solidFrame("plain.png", 2, 2, star))
	png, err := LoadFrame(filepath.Join(dir, "plain.png"))
	require.NoError(t, err)
	assert.True(t, png.CapturedAt.IsZero())
	assert.NotContains(t, png.String(), "captured")
}
