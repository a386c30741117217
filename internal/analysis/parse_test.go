package analysis

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON object",
			input: `{"score": 70, "label": "Credible"}`,
			want:  `{"score": 70, "label": "Credible"}`,
		},
		{
			name:  "JSON wrapped in json code fence",
			input: "```json\n{\"score\": 70}\n```",
			want:  `{"score": 70}`,
		},
		{
			name:  "JSON wrapped in plain code fence",
			input: "```\n{\"score\": 70}\n```",
			want:  `{"score": 70}`,
		},
		{
			name:  "JSON with surrounding whitespace",
			input: "  \n  {\"score\": 1}  \n  ",
			want:  `{"score": 1}`,
		},
		{
			name:  "code fence with extra whitespace",
			input: "```json\n\n  {\"score\": 1}\n\n```",
			want:  `{"score": 1}`,
		},
		{
			name:  "prose is left alone",
			input: "I cannot analyze this text.",
			want:  "I cannot analyze this text.",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
