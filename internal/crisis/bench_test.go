package crisis

import "testing"

func BenchmarkClassify_NoMatch(b *testing.B) {
	d := NewDefault()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Classify("the meeting ran long and I still have errands to run tonight")
	}
}

func BenchmarkClassify_CriticalMatch(b *testing.B) {
	d := NewDefault()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Classify("I want to kill myself")
	}
}

func BenchmarkClassify_MediumScan(b *testing.B) {
	// Worst case: both higher tiers scanned in full before medium decides.
	d := NewDefault()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Classify("I feel hopeless and worthless about everything lately")
	}
}
