package formatter

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// BlankNodeIDGenerator produces the label of the seq-th generated blank node
// of one render. The result is written after "_:" and must be a valid Turtle
// blank node label. seq starts at 0 for every render.
type BlankNodeIDGenerator func(node rdf.BlankNode, seq int) string

// SequentialBlankNodeIDs returns labels prefix0, prefix1, ...
func SequentialBlankNodeIDs(prefix string) BlankNodeIDGenerator {
	return func(_ rdf.BlankNode, seq int) string {
		return prefix + strconv.Itoa(seq)
	}
}

// DefaultUUIDNamespace is the namespace used by the CLI for UUID labels.
var DefaultUUIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(rdf.FMTNamespace))

// UUIDBlankNodeIDs returns name-based (SHA-1) UUID labels. The same namespace
// and sequence number always give the same label.
func UUIDBlankNodeIDs(namespace uuid.UUID) BlankNodeIDGenerator {
	return func(_ rdf.BlankNode, seq int) string {
		id := uuid.NewSHA1(namespace, []byte(strconv.Itoa(seq)))
		return "u" + strings.ReplaceAll(id.String(), "-", "")
	}
}
