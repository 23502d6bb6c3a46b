package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCaptchaPage(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "chinese unusual traffic page",
			content: "我们的系统检测到您的计算机网络中存在异常流量",
			want:    true,
		},
		{
			name:    "english unusual traffic page",
			content: "Our systems have detected unusual traffic from your computer network.",
			want:    true,
		},
		{
			name:    "recaptcha widget, mixed case",
			content: "Please complete the reCAPTCHA below to continue",
			want:    true,
		},
		{
			name:    "robot check",
			content: "To continue, please prove you're not a robot",
			want:    true,
		},
		{
			name:    "normal answer page",
			content: "AI 模式 MCP协议是一种开放标准，用于连接AI模型与外部工具。 搜索结果",
			want:    false,
		},
		{
			name:    "empty page",
			content: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCaptchaPage(tt.content))
		})
	}
}
