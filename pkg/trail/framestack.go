package trail

import(
	"fmt"
	"sort"
)

// A FrameStack is the set of aligned frames from one capture run. It
// is kept sorted by filename, so traversal is reproducible.
type FrameStack struct {
	Frames []Frame
}

func NewFrameStack(frames ...Frame) FrameStack {
	fs := FrameStack{Frames: []Frame{}}
	for _, f := range frames {
		fs.Add(f)
	}
	return fs
}

func (fs FrameStack)String() string {
	str := fmt.Sprintf("FrameStack (%d frames) [\n", len(fs.Frames))
	for _, f := range fs.Frames {
		str += fmt.Sprintf("  %s\n", f)
	}
	return str + "]\n"
}

func (fs *FrameStack)Add(f Frame) {
	fs.Frames = append(fs.Frames, f)
	sort.SliceStable(fs.Frames, func(i, j int) bool { return fs.Frames[i].Filename() < fs.Frames[j].Filename() })
}

func (fs FrameStack)Len() int { return len(fs.Frames) }

// Validate checks the stack is non-empty, and every frame has the same non-zero size.
func (fs FrameStack)Validate() error {
	if len(fs.Frames) == 0 {
		return fmt.Errorf("frame stack is empty: %w", ErrInvalidInput)
	}
	if err := checkArea("frame stack", fs.Frames[0]); err != nil {
		return err
	}
	return checkSameSize("frame stack", fs.Frames)
}
