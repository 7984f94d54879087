package pipeline

import "testing"

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantKinds []Kind
		wantCode  bool
	}{
		{name: "empty", text: "", wantKinds: nil},
		{name: "single newline", text: "\n", wantKinds: []Kind{KindBlank}},
		{
			name:      "blank lines are kept",
			text:      "# H\n\n- a\n\n\n- b\n",
			wantKinds: []Kind{KindHeading, KindBlank, KindUnorderedListItem, KindBlank, KindBlank, KindUnorderedListItem},
		},
		{
			name:      "code fence sets the flag",
			text:      "text\n```go\nx\n```",
			wantKinds: []Kind{KindText, KindCodeFence, KindText, KindCodeFence},
			wantCode:  true,
		},
		{
			name:      "inline backticks do not set the flag",
			text:      "use `code` here",
			wantKinds: []Kind{KindText},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records, code := Tokenize(tt.text)
			if code != tt.wantCode {
				t.Errorf("Tokenize(%q) containsCodeFence = %v, want %v", tt.text, code, tt.wantCode)
			}
			if len(records) != len(tt.wantKinds) {
				t.Fatalf("Tokenize(%q) returned %d records, want %d", tt.text, len(records), len(tt.wantKinds))
			}
			for i, rec := range records {
				if rec.Token.Kind != tt.wantKinds[i] {
					t.Errorf("record %d kind = %v, want %v", i, rec.Token.Kind, tt.wantKinds[i])
				}
				if rec.Line != i+1 {
					t.Errorf("record %d line = %d, want %d", i, rec.Line, i+1)
				}
			}
		})
	}
}

func TestTokenizeFrom(t *testing.T) {
	t.Parallel()

	records, _ := TokenizeFrom("a\nb", 5)
	if len(records) != 2 || records[0].Line != 5 || records[1].Line != 6 {
		t.Errorf("TokenizeFrom lines = %+v, want 5 and 6", records)
	}
}
