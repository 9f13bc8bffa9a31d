package crisis

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/quietharbor/quietharbor/internal/model"
)

func TestClassifyCritical(t *testing.T) {
	d := NewDefault()

	messages := []string{
		"I want to kill myself",
		"I'm going to end my life",
		"I want to die",
		"I'm better off dead",
		"There's no reason to live",
		"I can't go on anymore",
	}

	for _, msg := range messages {
		result := d.Classify(msg)
		if !result.Detected {
			t.Errorf("Classify(%q): expected detection", msg)
		}
		if result.Level != model.SeverityCritical {
			t.Errorf("Classify(%q): level = %s, want critical", msg, result.Level)
		}
		if result.Confidence != 1.0 {
			t.Errorf("Classify(%q): confidence = %v, want 1.0", msg, result.Confidence)
		}
		if len(result.Keywords) == 0 {
			t.Errorf("Classify(%q): no keywords reported", msg)
		}
	}
}

func TestClassifyHigh(t *testing.T) {
	d := NewDefault()

	messages := []string{
		"I've been cutting myself",
		"I want to hurt myself",
		"Thinking about self-harm",
		"I took an overdose",
		"I'm thinking about overdose",
	}

	for _, msg := range messages {
		result := d.Classify(msg)
		if !result.Detected {
			t.Errorf("Classify(%q): expected detection", msg)
		}
		if result.Level != model.SeverityHigh {
			t.Errorf("Classify(%q): level = %s, want high", msg, result.Level)
		}
		if result.Confidence != 0.8 {
			t.Errorf("Classify(%q): confidence = %v, want 0.8", msg, result.Confidence)
		}
	}
}

func TestClassifyMediumNeedsTwoKeywords(t *testing.T) {
	d := NewDefault()

	messages := []string{
		"I feel so hopeless and worthless",
		"I'm helpless and desperate",
		"I can't cope, I feel like a burden",
		"I feel hopeless and worthless",
	}

	for _, msg := range messages {
		result := d.Classify(msg)
		if !result.Detected {
			t.Errorf("Classify(%q): expected detection", msg)
		}
		if result.Level != model.SeverityMedium {
			t.Errorf("Classify(%q): level = %s, want medium", msg, result.Level)
		}
		if result.Confidence != 0.5 {
			t.Errorf("Classify(%q): confidence = %v, want 0.5", msg, result.Confidence)
		}
		if len(result.Keywords) < 2 {
			t.Errorf("Classify(%q): keywords = %v, want at least 2", msg, result.Keywords)
		}
	}
}

func TestClassifySingleMediumKeywordIsNone(t *testing.T) {
	d := NewDefault()

	result := d.Classify("I feel hopeless")
	if result.Detected {
		t.Error("single medium keyword must not qualify as a crisis")
	}
	if result.Level != model.SeverityNone {
		t.Errorf("level = %s, want none", result.Level)
	}
	if result.Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0.0", result.Confidence)
	}
}

func TestClassifyNormalMessages(t *testing.T) {
	d := NewDefault()

	messages := []string{
		"I'm having a bad day",
		"Feeling a bit sad",
		"Work is stressful",
		"I'm worried about my exam",
		"Just feeling down",
	}

	for _, msg := range messages {
		result := d.Classify(msg)
		if result.Detected {
			t.Errorf("Classify(%q): false positive, keywords = %v", msg, result.Keywords)
		}
		if result.Level != model.SeverityNone {
			t.Errorf("Classify(%q): level = %s, want none", msg, result.Level)
		}
		if result.Confidence != 0.0 {
			t.Errorf("Classify(%q): confidence = %v, want 0.0", msg, result.Confidence)
		}
		if len(result.Keywords) != 0 {
			t.Errorf("Classify(%q): keywords = %v, want empty", msg, result.Keywords)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	d := NewDefault()

	for _, msg := range []string{"", "   ", "\n\t"} {
		result := d.Classify(msg)
		if result.Detected || result.Level != model.SeverityNone || result.Confidence != 0.0 || len(result.Keywords) != 0 {
			t.Errorf("Classify(%q) = %+v, want none/0.0/empty", msg, result)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	d := NewDefault()

	upper := d.Classify("I WANT TO KILL MYSELF")
	mixed := d.Classify("I Want To Kill Myself")
	lower := d.Classify("i want to kill myself")

	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("case sensitivity: %+v != %+v", upper, lower)
	}
	if !reflect.DeepEqual(mixed, lower) {
		t.Errorf("case sensitivity: %+v != %+v", mixed, lower)
	}
	if lower.Level != model.SeverityCritical {
		t.Errorf("level = %s, want critical", lower.Level)
	}
}

// Critical shadows high shadows medium: co-occurring lower-tier keywords
// never change the reported tier, confidence, or keyword set.
func TestClassifyTierPrecedence(t *testing.T) {
	d := NewDefault()

	result := d.Classify("I feel hopeless and worthless and want to kill myself")
	if result.Level != model.SeverityCritical {
		t.Fatalf("level = %s, want critical", result.Level)
	}
	if result.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", result.Confidence)
	}
	for _, kw := range result.Keywords {
		if kw == "hopeless" || kw == "worthless" {
			t.Errorf("lower-tier keyword %q leaked into critical result", kw)
		}
	}

	result = d.Classify("I'm desperate, hopeless, and thinking about overdose")
	if result.Level != model.SeverityHigh {
		t.Fatalf("level = %s, want high", result.Level)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", result.Confidence)
	}
}

func TestClassifyCollectsAllMatchesWithinTier(t *testing.T) {
	d := NewDefault()

	result := d.Classify("suicide is on my mind, I want to kill myself")
	if result.Level != model.SeverityCritical {
		t.Fatalf("level = %s, want critical", result.Level)
	}
	want := map[string]bool{"suicide": true, "kill myself": true}
	for _, kw := range result.Keywords {
		delete(want, kw)
	}
	if len(want) != 0 {
		t.Errorf("missing matches: %v (got %v)", want, result.Keywords)
	}
}

func TestClassifyWordBoundaries(t *testing.T) {
	d := NewDefault()

	// "die" must not match inside "diet", "death" not inside "deathless" etc.
	cases := []string{
		"I started a new diet today",
		"her deathless prose holds up",
		"the pillscheduler job failed again",
	}
	for _, msg := range cases {
		result := d.Classify(msg)
		if result.Detected {
			t.Errorf("Classify(%q): keyword matched inside a larger word: %v", msg, result.Keywords)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	d := NewDefault()

	inputs := []string{
		"",
		"I feel hopeless and worthless",
		"I want to kill myself",
		"just another tuesday",
	}
	for _, msg := range inputs {
		first := d.Classify(msg)
		second := d.Classify(msg)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Classify(%q) not idempotent: %+v != %+v", msg, first, second)
		}
	}
}

func TestClassifyExampleFromDocs(t *testing.T) {
	d := NewDefault()

	result := d.Classify("I feel hopeless and worthless")
	if result.Level != model.SeverityMedium || result.Confidence != 0.5 {
		t.Errorf("got %+v, want medium/0.5", result)
	}

	result = d.Classify("I'm thinking about overdose")
	if result.Level != model.SeverityHigh || result.Confidence != 0.8 {
		t.Errorf("got %+v, want high/0.8", result)
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	data := []byte("critical:\n  - final goodbye\nmedium:\n  - hopeless\n  - drowning\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	result := d.Classify("this is my final goodbye")
	if result.Level != model.SeverityCritical {
		t.Errorf("override keyword not active: %+v", result)
	}

	// Built-ins survive merging; duplicate "hopeless" is not double-counted.
	result = d.Classify("I feel hopeless, like I'm drowning")
	if result.Level != model.SeverityMedium {
		t.Errorf("got %+v, want medium", result)
	}

	result = d.Classify("I want to kill myself")
	if result.Level != model.SeverityCritical {
		t.Errorf("built-in keyword lost after merge: %+v", result)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result := d.Classify("suicide"); result.Level != model.SeverityCritical {
		t.Errorf("fallback detector broken: %+v", result)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	if err := os.WriteFile(path, []byte("critical: {not valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestResources(t *testing.T) {
	resources := Resources()
	if len(resources) == 0 {
		t.Fatal("no resources returned")
	}

	byName := make(map[string]string, len(resources))
	for _, r := range resources {
		byName[r.Name] = r.Contact
	}
	if !strings.Contains(byName["US Crisis Line"], "988") {
		t.Errorf("US Crisis Line = %q, want 988 mentioned", byName["US Crisis Line"])
	}
	if !strings.Contains(byName["US Crisis Text"], "741741") {
		t.Errorf("US Crisis Text = %q, want 741741 mentioned", byName["US Crisis Text"])
	}
}
