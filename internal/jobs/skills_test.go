package jobs

import (
	"reflect"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "known skills in vocabulary order",
			description: "We use Docker, React and PostgreSQL daily.",
			want:        []string{"React", "SQL", "PostgreSQL", "Docker"},
		},
		{
			name:        "case sensitive",
			description: "experience with react and docker",
			want:        []string{},
		},
		{
			name:        "frontend default",
			description: "Join our Front-End guild",
			want:        []string{"JavaScript", "React", "HTML", "CSS"},
		},
		{
			name:        "backend default",
			description: "a backend role",
			want:        []string{"Node.js", "Express", "SQL", "APIs"},
		},
		{
			name:        "fullstack default",
			description: "full stack generalist",
			want:        []string{"JavaScript", "React", "Node.js", "SQL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractSkills(tt.description); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractSkills() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text collapses whitespace",
			raw:  "  Build   APIs \n\n with Go  ",
			want: "Build APIs\nwith Go",
		},
		{
			name: "html blocks become lines",
			raw:  "<p>Build <b>services</b></p><ul><li>Go</li><li>SQL</li></ul><script>alert(1)</script>",
			want: "Build services\nGo\nSQL",
		},
		{
			name: "entities and breaks",
			raw:  "R&amp;D team<br>Remote",
			want: "R&D team\nRemote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanDescription(tt.raw); got != tt.want {
				t.Fatalf("CleanDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
