package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips leading chinese mode label",
			input: "AI 模式 MCP协议是一种开放标准。",
			want:  "MCP协议是一种开放标准。",
		},
		{
			name:  "strips leading english mode label",
			input: "AI Mode The protocol is an open standard.",
			want:  "The protocol is an open standard.",
		},
		{
			name:  "removes disclaimer lines",
			input: "答案正文。\nAI 的回答未必正确无误，请注意核查\n更多正文。",
			want:  "答案正文。\n更多正文。",
		},
		{
			name:  "collapses space and newline runs",
			input: "first   part\n\n\nsecond    part",
			want:  "first part\nsecond part",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  \n  内容  \n ",
			want:  "内容",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAnswer(tt.input))
		})
	}
}

func TestCleanAnswer_Idempotent(t *testing.T) {
	inputs := []string{
		"AI 模式 这是答案正文，包含  多余空格\n\n和空行。登录",
		"AI Mode Answer body text.\nRelated searches\nmore text",
		"plain already-clean text",
		// Removing 隐私权 splices 帮 and 助 into 帮助, which is itself a
		// removable phrase; a single pattern pass would leave it behind.
		"正文开始。帮隐私权助正文结束。",
	}

	for _, input := range inputs {
		once := CleanAnswer(input)
		twice := CleanAnswer(once)
		assert.Equal(t, once, twice, "cleaning must be idempotent for %q", input)
	}
}

func TestCleanAnswer_SplicedPhraseRemoved(t *testing.T) {
	got := CleanAnswer("正文开始。帮隐私权助正文结束。")
	assert.NotContains(t, got, "隐私权")
	assert.NotContains(t, got, "帮助")
	assert.Equal(t, "正文开始。正文结束。", got)
}

func TestCleanAnswer_NoModeLabelPrefixRemains(t *testing.T) {
	for _, label := range aiModeLabels {
		cleaned := CleanAnswer(label + " 回答内容在这里，足够长的正文。")
		assert.False(t, strings.HasPrefix(cleaned, label),
			"cleaned answer must not start with label %q", label)
	}
}
