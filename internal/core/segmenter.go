// ABOUTME: Segmenter splits hierarchical curriculum text into skill-tagged chunks
// ABOUTME: Single forward pass tracking lesson and skill state across heading markers
package core

import (
	"strings"

	"github.com/edutera/ragserver/internal/models"
)

const (
	// DefaultSkillName labels content before the first heading marker
	DefaultSkillName = "Introduction"

	// lessonMarker starts a new lesson and skill
	lessonMarker = "# "
	// skillMarker starts a new skill within the current lesson
	skillMarker = "$$$$"
	// subHeadingToken replaces the skill marker so downstream context
	// retains the heading structure
	subHeadingToken = "## "
)

// Segmenter parses a plain-text curriculum document into ordered chunks.
// Malformed markers degrade to ordinary text lines; segmentation never fails.
type Segmenter struct {
	unitID int
}

// NewSegmenter creates a Segmenter for a document belonging to one unit
func NewSegmenter(unitID int) *Segmenter {
	return &Segmenter{unitID: unitID}
}

// Segment scans the document line by line and returns the chunk sequence.
// Lesson and skill ids are non-decreasing in emission order, and a chunk
// with empty text is never emitted.
func (s *Segmenter) Segment(document string) []models.Chunk {
	var (
		chunks    []models.Chunk
		buffer    []string
		lessonID  = 0
		skillID   = 0
		skillName = DefaultSkillName
	)

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		chunks = append(chunks, models.Chunk{
			Text:      strings.Join(buffer, "\n"),
			UnitID:    s.unitID,
			LessonID:  lessonID,
			SkillID:   skillID,
			SkillName: skillName,
			ChunkType: models.ChunkTypeContent,
		})
		buffer = nil
	}

	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, lessonMarker):
			flush()
			lessonID++
			skillID++
			skillName = strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
			buffer = append(buffer, line)

		case strings.HasPrefix(line, skillMarker):
			flush()
			skillID++
			skillName = strings.TrimSpace(strings.TrimPrefix(line, skillMarker))
			buffer = append(buffer, subHeadingToken+skillName)

		case line != "":
			buffer = append(buffer, line)
		}
	}

	flush()
	return chunks
}
