package pipeline

import "testing"

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fragment    string
		noHighlight bool
		noMath      bool
		wantCode    bool
		wantMath    bool
	}{
		{"plain text", "<p>hello</p>", false, false, false, false},
		{"fenced code", "<pre><code>x\n</code></pre>", false, false, true, false},
		{"inline code only", "<p><code>x</code></p>", false, false, false, false},
		{"inline math", "<p>#{{ x }}#</p>", false, false, false, true},
		{"display math", "<p>##{{ x }}##</p>", false, false, false, true},
		{"both", "<pre><code>x</code></pre><p>#{{x}}#</p>", false, false, true, true},
		{"highlight disabled", "<pre><code>x</code></pre>", true, false, false, false},
		{"math disabled", "<p>#{{ x }}#</p>", false, true, false, false},
		// Marker inside a code span still counts.
		{"marker in code span", "<p><code>#{{</code></p>", false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotCode, gotMath := Sniff(tt.fragment, tt.noHighlight, tt.noMath)
			if gotCode != tt.wantCode || gotMath != tt.wantMath {
				t.Errorf("Sniff(%q) = (%v, %v), want (%v, %v)",
					tt.fragment, gotCode, gotMath, tt.wantCode, tt.wantMath)
			}
		})
	}
}
