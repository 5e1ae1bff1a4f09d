package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, IsHeaderLine("**Farming Technique Optimization**"))
	assert.True(t, IsHeaderLine("# Salinity Management"))
	assert.True(t, IsHeaderLine("### Production Timing"))
	assert.False(t, IsHeaderLine("**bold** in the middle of text"))
	assert.False(t, IsHeaderLine("#hashtag"))
	assert.False(t, IsHeaderLine("plain sentence"))
	assert.False(t, IsHeaderLine(""))
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, IsBulletLine("• Monitor salinity weekly"))
	assert.True(t, IsBulletLine("- Reinforce raft anchors"))
	assert.True(t, IsBulletLine("* Harvest before typhoon season"))
	assert.False(t, IsBulletLine("-no space after glyph"))
	assert.False(t, IsBulletLine("1. numbered item"))
	assert.False(t, IsBulletLine(""))
}

func TestIsMetaCommentaryLine(t *testing.T) {
	meta := []string{
		"Okay, here is what I came up with.",
		"Let me think about this for a moment.",
		"I think the farmer needs better anchoring.",
		"I'm going to provide six categories of advice.",
		"I will try to cover every requested section.",
		"They have 2 typhoon events in the data.",
		"The output should start with the first header.",
		"In summary, conditions look favorable.",
	}
	for _, line := range meta {
		assert.True(t, IsMetaCommentaryLine(line), "expected meta: %q", line)
	}

	content := []string{
		"Deploy additional raft units in the sheltered cove.",
		"Maintain salinity between 15 and 25 ppt.",
		"Harvest schedules align with tidal cycles.",
	}
	for _, line := range content {
		assert.False(t, IsMetaCommentaryLine(line), "expected content: %q", line)
	}
}

const structuredReply = "Okay let me think.\n" +
	"**Farming Technique Optimization**\n" +
	"• Do X\n" +
	"Some stray sentence.\n" +
	"• Do Y"

func TestSanitize_MinimalDropsNarrative(t *testing.T) {
	s := NewSanitizer(ModeMinimal)
	got := s.Sanitize(structuredReply)

	want := "**Farming Technique Optimization**\n• Do X\n• Do Y"
	assert.Equal(t, want, got)
}

func TestSanitize_DenylistKeepsPlainProse(t *testing.T) {
	s := NewSanitizer(ModeDenylist)
	got := s.Sanitize(structuredReply)

	// The leading self-talk is still dropped (before the first header), but the
	// stray sentence survives because it does not match the denylist.
	want := "**Farming Technique Optimization**\n• Do X\nSome stray sentence.\n• Do Y"
	assert.Equal(t, want, got)
}

func TestSanitize_DenylistDropsMetaAfterStart(t *testing.T) {
	raw := "**Salinity Management**\n" +
		"• Flush ponds after heavy rain\n" +
		"I think that covers salinity.\n" +
		"• Recalibrate refractometers monthly"

	got := NewSanitizer(ModeDenylist).Sanitize(raw)
	assert.NotContains(t, got, "I think")
	assert.Contains(t, got, "• Flush ponds after heavy rain")
	assert.Contains(t, got, "• Recalibrate refractometers monthly")
}

func TestSanitize_PreservesBlankLinesBetweenSections(t *testing.T) {
	raw := "**A**\n• one\n\n**B**\n• two"
	got := NewSanitizer(ModeMinimal).Sanitize(raw)
	assert.Equal(t, raw, got)
}

func TestSanitize_MarkdownHeadings(t *testing.T) {
	raw := "Sure, here's my plan.\n# Weather & Disaster Preparedness\n- Anchor rafts before storms"
	got := NewSanitizer(ModeMinimal).Sanitize(raw)
	assert.Equal(t, "# Weather & Disaster Preparedness\n- Anchor rafts before storms", got)
}

func TestSanitize_FallbackFindsInlineHeader(t *testing.T) {
	raw := "Here is the plan: **Production Timing** spawn in spring"
	got := NewSanitizer(ModeMinimal).Sanitize(raw)
	assert.Equal(t, "**Production Timing** spawn in spring", got)
}

func TestSanitize_NoStructureReturnsTrimmedInput(t *testing.T) {
	raw := "  just some plain advice with no formatting  "
	got := NewSanitizer(ModeMinimal).Sanitize(raw)
	assert.Equal(t, "just some plain advice with no formatting", got)
}

func TestSanitize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", NewSanitizer(ModeMinimal).Sanitize(""))
	assert.Equal(t, "", NewSanitizer(ModeDenylist).Sanitize("   \n\n  "))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		structuredReply,
		"**A**\n• one\n\n**B**\n• two",
		"no structure at all",
		"Sure.\n# Heading\n- item\nchatter in between\n- item two",
	}
	for _, mode := range []SanitizeMode{ModeMinimal, ModeDenylist} {
		s := NewSanitizer(mode)
		for _, in := range inputs {
			once := s.Sanitize(in)
			assert.Equal(t, once, s.Sanitize(once), "mode %d input %q", mode, in)
		}
	}
}

func TestSanitize_LongRealisticReply(t *testing.T) {
	var b strings.Builder
	b.WriteString("Let me think about this request.\n")
	b.WriteString("The user wants six categories.\n\n")
	for _, h := range []string{
		"Farming Technique Optimization",
		"Salinity Management",
		"Weather & Disaster Preparedness",
		"Environmental Monitoring",
		"Production Timing",
		"Best Practices & Sustainability",
	} {
		b.WriteString("**" + h + "**\n• First action\n• Second action\n\n")
	}

	got := NewSanitizer(ModeMinimal).Sanitize(b.String())
	assert.True(t, strings.HasPrefix(got, "**Farming Technique Optimization**"))
	assert.NotContains(t, got, "Let me think")
	assert.NotContains(t, got, "The user wants")
	assert.Equal(t, 6, strings.Count(got, "**\n"), "all six headers retained")
	assert.Equal(t, 12, strings.Count(got, "• "))
}
