package fallback

import (
	"strings"
	"testing"
)

func TestTemplate_Defaults(t *testing.T) {
	got := Template("recommend me some prompt optimization tools")

	for _, want := range []string{
		"Prompt Optimization Expert",
		"AI tool beginners",
		"Prompt optimization",
		"find popular prompt optimization tools",
		"tool name (official website link)",
		"AI hallucinations",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected default %q in output, got:\n%s", want, got)
		}
	}
}

func TestTemplate_ExtractsSlots(t *testing.T) {
	prompt := "What Role you want AI to play? Senior Go Reviewer. " +
		"What Audience you want AI to generate content for? backend engineers. " +
		"What Concern you have about this discussion with AI? outdated APIs."

	got := Template(prompt)

	if !strings.Contains(got, "act as a Senior Go Reviewer") {
		t.Errorf("role not extracted: %s", got)
	}
	if !strings.Contains(got, "for backend engineers") {
		t.Errorf("audience not extracted: %s", got)
	}
	if !strings.Contains(got, "concerned about outdated APIs") {
		t.Errorf("concern not extracted: %s", got)
	}
	// Slots absent from the input keep their defaults.
	if !strings.Contains(got, "Prompt optimization") {
		t.Errorf("boundary default missing: %s", got)
	}
}

func TestTemplate_Deterministic(t *testing.T) {
	for _, prompt := range []string{"", "hello", "What Role you want AI to play? X."} {
		if a, b := Template(prompt), Template(prompt); a != b {
			t.Errorf("Template(%q) not deterministic: %q vs %q", prompt, a, b)
		}
		if Template(prompt) == "" {
			t.Errorf("Template(%q) returned empty output", prompt)
		}
	}
}

func TestDomainRules_ScoresKeywords(t *testing.T) {
	got := DomainRules("如何用机器学习和神经网络优化AI模型")
	if !strings.Contains(got, "你是人工智能领域的专家") {
		t.Errorf("expected AI domain, got: %s", got)
	}
}

func TestDomainRules_ZeroMatchesDefaultDomain(t *testing.T) {
	got := DomainRules("tell me about gardening")
	if !strings.Contains(got, "你是相关领域的专家") {
		t.Errorf("expected default domain for zero matches, got: %s", got)
	}
}

func TestDomainRules_TieBreaksFirstDeclared(t *testing.T) {
	// "软件" scores one for both 编程 and 科技; 编程 is declared first.
	got := DomainRules("软件")
	if !strings.Contains(got, "你是编程领域的专家") {
		t.Errorf("expected first-declared domain to win the tie, got: %s", got)
	}
}

func TestDomainRules_AppendsDisclaimers(t *testing.T) {
	got := DomainRules("推荐几本书")
	if !strings.Contains(got, "请提供主要观点的网页链接") {
		t.Errorf("missing source-link clause: %s", got)
	}
	if !strings.Contains(got, "不要编造") {
		t.Errorf("missing no-fabrication clause: %s", got)
	}
}

func TestDomainRules_Deterministic(t *testing.T) {
	for _, prompt := range []string{"", "AI 编程 学习"} {
		if a, b := DomainRules(prompt), DomainRules(prompt); a != b {
			t.Errorf("DomainRules(%q) not deterministic", prompt)
		}
		if DomainRules(prompt) == "" {
			t.Errorf("DomainRules(%q) returned empty output", prompt)
		}
	}
}

func TestForPolicy(t *testing.T) {
	if got := ForPolicy("rules")("AI"); !strings.Contains(got, "领域的专家") {
		t.Errorf("rules policy not resolved: %s", got)
	}
	if got := ForPolicy("template")(""); !strings.Contains(got, "act as a") {
		t.Errorf("template policy not resolved: %s", got)
	}
	if got := ForPolicy("bogus")(""); !strings.Contains(got, "act as a") {
		t.Errorf("unknown policy should fall back to template: %s", got)
	}
}
