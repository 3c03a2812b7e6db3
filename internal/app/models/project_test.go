package models

import (
	"testing"
	"time"
)

func TestProjectAcceptsApplications(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name    string
		project Project
		want    bool
	}{
		{"published without deadline", Project{Status: ProjectStatusPublished}, true},
		{"published before deadline", Project{Status: ProjectStatusPublished, ApplicationDeadline: &future}, true},
		{"published after deadline", Project{Status: ProjectStatusPublished, ApplicationDeadline: &past}, false},
		{"draft", Project{Status: ProjectStatusDraft}, false},
		{"closed", Project{Status: ProjectStatusClosed, ApplicationDeadline: &future}, false},
	}

	for _, tc := range cases {
		if got := tc.project.AcceptsApplications(now); got != tc.want {
			t.Errorf("%s: AcceptsApplications = %v, want %v", tc.name, got, tc.want)
		}
	}
}
