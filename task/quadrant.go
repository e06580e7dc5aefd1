package task

import (
	"fmt"
	"strconv"
	"strings"

	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/internal/validation"
)

// Quadrant is one cell of the Eisenhower matrix.
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "DO_FIRST"
	QuadrantSchedule  Quadrant = "SCHEDULE"
	QuadrantDelegate  Quadrant = "DELEGATE"
	QuadrantEliminate Quadrant = "ELIMINATE"
)

// unknownQuadrantRank sorts unrecognized quadrants after every known one.
const unknownQuadrantRank = 5

// QuadrantMeta describes a quadrant for display and ordering.
type QuadrantMeta struct {
	ID          Quadrant
	Label       string
	Description string
	// Rank is the priority of the quadrant; 1 is most urgent.
	Rank int
}

var quadrantTable = []QuadrantMeta{
	{ID: QuadrantDoFirst, Label: "Do First", Description: "Urgent & Important", Rank: 1},
	{ID: QuadrantSchedule, Label: "Schedule", Description: "Not Urgent & Important", Rank: 2},
	{ID: QuadrantDelegate, Label: "Delegate", Description: "Urgent & Not Important", Rank: 3},
	{ID: QuadrantEliminate, Label: "Eliminate", Description: "Not Urgent & Not Important", Rank: 4},
}

// Quadrants returns the registry ordered by rank.
func Quadrants() []QuadrantMeta {
	return append([]QuadrantMeta(nil), quadrantTable...)
}

// ValidQuadrants returns all valid quadrant values in rank order.
func ValidQuadrants() []Quadrant {
	values := make([]Quadrant, 0, len(quadrantTable))
	for _, meta := range quadrantTable {
		values = append(values, meta.ID)
	}
	return values
}

// IsValid returns true if the quadrant is a known valid value.
func (q Quadrant) IsValid() bool {
	_, ok := q.Meta()
	return ok
}

// Meta returns the registry entry for the quadrant.
func (q Quadrant) Meta() (QuadrantMeta, bool) {
	for _, meta := range quadrantTable {
		if meta.ID == q {
			return meta, true
		}
	}
	return QuadrantMeta{}, false
}

// Rank returns the priority rank of the quadrant.
func (q Quadrant) Rank() int {
	meta, ok := q.Meta()
	if !ok {
		return unknownQuadrantRank
	}
	return meta.Rank
}

// Label returns the human-readable quadrant name.
func (q Quadrant) Label() string {
	meta, ok := q.Meta()
	if !ok {
		return string(q)
	}
	return meta.Label
}

// ParseQuadrant accepts canonical names, dashed or lowercase forms,
// labels, the short words "first", "schedule", "delegate", "eliminate",
// and ranks 1 through 4.
func ParseQuadrant(value string) (Quadrant, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	if normalized == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidQuadrant)
	}

	if rank, err := strconv.Atoi(normalized); err == nil {
		for _, meta := range quadrantTable {
			if meta.Rank == rank {
				return meta.ID, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidQuadrant, value)
	}

	key := strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, meta := range quadrantTable {
		label := strings.ReplaceAll(strings.ToLower(meta.Label), " ", "_")
		if key == strings.ToLower(string(meta.ID)) || key == label {
			return meta.ID, nil
		}
	}
	if key == "first" {
		return QuadrantDoFirst, nil
	}

	return "", validation.FormatInvalidValueError(ErrInvalidQuadrant, Quadrant(value), ValidQuadrants())
}

func quadrantValidList() string {
	return validation.FormatValidValues(ValidQuadrants())
}
