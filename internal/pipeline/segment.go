package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AHSpire/StarSound/internal/fileutil"
	"github.com/AHSpire/StarSound/internal/segmentplan"
)

// Segment is one planned unit of audio: either a whole source file or a
// contiguous slice of one that exceeded the segment ceiling.
type Segment struct {
	ID     string
	Source string
	Span   segmentplan.Span
	Split  bool
}

// OutputName returns the converted file name for the segment.
func (s Segment) OutputName() string {
	return s.ID + ".ogg"
}

// sourceID derives the stable identifier for a source file from its base
// name, stripped of extension and sanitized for use in file names.
func sourceID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fileutil.SanitizeName(base)
}

func partID(source string, part int) string {
	return fmt.Sprintf("%s_part%d", source, part)
}
