// ABOUTME: Chunk represents a skill-tagged span of curriculum text
// ABOUTME: Produced by the segmenter, persisted with an embedding for retrieval
package models

// ChunkType classifies a chunk within the curriculum hierarchy
type ChunkType string

const (
	ChunkTypeContent ChunkType = "content"
)

// Chunk is a contiguous span of source text tagged with hierarchy metadata.
// Chunks are immutable once created; every chunk belongs to exactly one
// lesson and one skill.
type Chunk struct {
	Text      string    `json:"text"`
	UnitID    int       `json:"unit_id"`
	LessonID  int       `json:"lesson_id"`
	SkillID   int       `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	ChunkType ChunkType `json:"chunk_type"`
}

// SkillContext aggregates the text of all chunks sharing a skill for one
// generation pass.
type SkillContext struct {
	SkillID   int    `json:"skill_id"`
	SkillName string `json:"skill_name"`
	Content   string `json:"content"`
}
