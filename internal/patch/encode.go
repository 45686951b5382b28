package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AHSpire/StarSound/internal/biome"
)

// FileName returns the patch file name for a biome, e.g.
// "forest.biome.patch".
func FileName(ref biome.Ref) string {
	return ref.Name + ".biome.patch"
}

// RelPath returns the mod-relative patch path, e.g.
// "biomes/surface/forest.biome.patch".
func RelPath(ref biome.Ref) string {
	return "biomes/" + ref.Category + "/" + FileName(ref)
}

// Encode renders a document in the layout the game tooling ecosystem
// expects: one operation per line, with a blank line separating the day
// section from the night section when both are present. The output is
// strict JSON; the blank line is whitespace inside the array.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[\n")

	nightStarted := false
	mixed := hasPart(doc.Ops, biome.Day) && hasPart(doc.Ops, biome.Night)

	for i, op := range doc.Ops {
		if mixed && !nightStarted && opTargets(op, biome.Night) {
			buf.WriteString("\n")
			nightStarted = true
		}

		line, err := encodeOp(op)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		if i < len(doc.Ops)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("]")

	if !json.Valid(buf.Bytes()) {
		return nil, fmt.Errorf("encode patch for %s: produced invalid JSON", doc.Biome)
	}
	return buf.Bytes(), nil
}

func encodeOp(op Operation) ([]byte, error) {
	value, err := json.Marshal(op.Value)
	if err != nil {
		return nil, fmt.Errorf("marshal patch value: %w", err)
	}
	return []byte(fmt.Sprintf(`{"op":%q, "path": %q, "value":%s}`, op.Op, op.Path, value)), nil
}

func opTargets(op Operation, part biome.Daypart) bool {
	return strings.Contains(op.Path, "/"+string(part)+"/tracks")
}

func hasPart(ops []Operation, part biome.Daypart) bool {
	for _, op := range ops {
		if opTargets(op, part) {
			return true
		}
	}
	return false
}
