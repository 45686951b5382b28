package patch

import (
	"errors"
	"fmt"

	"github.com/AHSpire/StarSound/internal/biome"
)

// ErrEmptySelection is returned when a mode requires at least one selected
// track or replacement and the selection has none.
var ErrEmptySelection = errors.New("empty selection")

// IndexOutOfRangeError reports a replacement that targets a slot beyond
// the vanilla pool. Emitting such a patch would dangle, so Build refuses.
type IndexOutOfRangeError struct {
	Biome  biome.Ref
	Part   biome.Daypart
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("replace index %d out of range for %s %s pool (vanilla has %d tracks)",
		e.Index, e.Biome, e.Part, e.Length)
}
