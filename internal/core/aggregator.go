// ABOUTME: SkillAggregator groups retrieved chunks into per-skill context blocks
// ABOUTME: Order and skill names follow first appearance in retrieval order
package core

import (
	"strings"

	"github.com/edutera/ragserver/internal/models"
)

// AggregateSkills merges the text of all chunks sharing a skill_id into
// one SkillContext per skill. The result preserves the order in which
// skills first appear, and each skill keeps its first-seen name.
func AggregateSkills(chunks []models.Chunk) []models.SkillContext {
	var (
		order   []int
		byID    = make(map[int]*strings.Builder)
		names   = make(map[int]string)
		results []models.SkillContext
	)

	for _, chunk := range chunks {
		b, ok := byID[chunk.SkillID]
		if !ok {
			b = &strings.Builder{}
			byID[chunk.SkillID] = b
			names[chunk.SkillID] = chunk.SkillName
			order = append(order, chunk.SkillID)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(chunk.Text)
	}

	for _, id := range order {
		results = append(results, models.SkillContext{
			SkillID:   id,
			SkillName: names[id],
			Content:   byID[id].String(),
		})
	}
	return results
}

// PrimarySkill selects the skill used for quiz generation: the first
// skill encountered in retrieval order. The tie-break is deliberate, not
// incidental map ordering.
func PrimarySkill(contexts []models.SkillContext) (models.SkillContext, bool) {
	if len(contexts) == 0 {
		return models.SkillContext{}, false
	}
	return contexts[0], true
}
