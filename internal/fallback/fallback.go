// Package fallback derives a best-effort optimized prompt locally when the
// remote provider is unavailable. Both policies are pure and deterministic:
// the same input always yields byte-identical, non-empty output.
package fallback

import (
	"fmt"
	"regexp"
	"strings"
)

// Generator produces a fallback optimization for the given prompt.
type Generator func(prompt string) string

// ForPolicy resolves a configured policy name. Unknown names fall back to
// the template-extraction policy.
func ForPolicy(name string) Generator {
	if name == "rules" {
		return DomainRules
	}
	return Template
}

// slot is one question of the six-slot prompt template.
type slot struct {
	pattern  *regexp.Regexp
	fallback string
}

var slots = []slot{
	{regexp.MustCompile(`What Role you want AI to play\? (.*?)\.`), "Prompt Optimization Expert"},
	{regexp.MustCompile(`What Audience you want AI to generate content for\? (.*?)\.`), "AI tool beginners"},
	{regexp.MustCompile(`What Boundary should AI focus on for this discussion\? (.*?)\.`), "Prompt optimization"},
	{regexp.MustCompile(`What Purpose you want AI to help you achieve\? (.*?)\.`), "find popular prompt optimization tools"},
	{regexp.MustCompile(`What Output format you want AI to generate\? (.*?)\.`), "tool name (official website link)"},
	{regexp.MustCompile(`What Concern you have about this discussion with AI\? (.*?)\.`), "AI hallucinations"},
}

// Template extracts the six template slots (Role, Audience, Boundary,
// Purpose, Output format, Concern) from the prompt's expected phrasing and
// reassembles them into an instruction paragraph. Any slot not found in the
// input is filled with its default value.
func Template(prompt string) string {
	values := make([]string, len(slots))
	for i, s := range slots {
		values[i] = s.fallback
		if m := s.pattern.FindStringSubmatch(prompt); m != nil && m[1] != "" {
			values[i] = m[1]
		}
	}

	return fmt.Sprintf(`I want you to act as a %s for %s in the field of %s.
My goal is to %s and I need the response in the format of %s.
I'm concerned about %s.`, values[0], values[1], values[2], values[3], values[4], values[5])
}

// domain maps a domain label to its keyword list. Declared in a slice so
// that scoring ties resolve to the first-declared domain.
type domain struct {
	label    string
	keywords []string
}

var domains = []domain{
	{"人工智能", []string{"AI", "人工智能", "机器学习", "深度学习", "GPT", "大语言模型", "神经网络"}},
	{"编程", []string{"编程", "代码", "Python", "JavaScript", "Java", "开发", "软件", "程序"}},
	{"教育", []string{"教育", "学习", "课程", "教学", "学校", "培训", "学生", "老师"}},
	{"健康", []string{"健康", "医疗", "疾病", "症状", "治疗", "医生", "药物", "饮食"}},
	{"商业", []string{"商业", "营销", "创业", "投资", "股票", "金融", "管理", "策略"}},
	{"科技", []string{"科技", "技术", "创新", "数字", "电子", "设备", "硬件", "软件"}},
}

// DomainRules classifies the prompt's domain by keyword count, prepends an
// expert preamble for the winning domain, and appends two fixed clauses:
// request source links, and admit uncertainty rather than fabricate.
// A domain with zero matches never wins; the label defaults to "相关".
func DomainRules(prompt string) string {
	lower := strings.ToLower(prompt)

	best := "相关"
	bestScore := 0
	for _, d := range domains {
		score := 0
		for _, kw := range d.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = d.label
		}
	}

	return fmt.Sprintf("你是%s领域的专家。%s。请提供主要观点的网页链接，以便核实。如遇不确定信息，请如实告知，不要编造。", best, prompt)
}
