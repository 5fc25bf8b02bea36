// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "project with process and status terms",
			text: "Kitchen remodel permit delay",
			want: []string{"kitchen", "remodel", "permit", "delayed"},
		},
		{
			name: "single project type",
			text: "new roof quote for homeowner Henderson",
			want: []string{"roofing", "estimate", "client"},
		},
		{
			name: "urgency and budget",
			text: "URGENT: cost overrun on the Maple St addition",
			want: []string{"addition", "urgent", "budget"},
		},
		{
			name: "team terms",
			text: "onboarding checklist for the new hire, OSHA training pending",
			want: []string{"hiring", "training", "safety"},
		},
		{
			name: "no vocabulary match",
			text: "lorem ipsum dolor sit amet",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractTags(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for _, w := range tt.want {
				if !contains(got, w) {
					t.Errorf("ExtractTags(%q) = %v, missing %q", tt.text, got, w)
				}
			}
		})
	}
}

func TestExtractTagsIdempotent(t *testing.T) {
	text := "kitchen remodel permit delay, urgent inspection"
	first := ExtractTags(text)
	second := ExtractTags(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-extraction differs: %v vs %v", first, second)
	}
}

func TestExtractTagsCap(t *testing.T) {
	// Text hitting far more than maxAutoTags patterns.
	text := "kitchen bathroom roof addition floor remodel deck permit inspection " +
		"estimate invoice schedule subcontractor material client delay urgent " +
		"completed budget hire training safety"
	got := ExtractTags(text)
	if len(got) != maxAutoTags {
		t.Errorf("got %d tags, want cap of %d: %v", len(got), maxAutoTags, got)
	}
}

func TestExtractTagsTokenShape(t *testing.T) {
	got := ExtractTags("URGENT!!! Kitchen Remodel PERMIT delay at 42 Maple St.")
	for _, tag := range got {
		if tag != strings.ToLower(tag) || !tagToken.MatchString(tag) {
			t.Errorf("tag %q is not a lowercase alphanumeric-or-hyphen token", tag)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases and trims", []string{" Permit ", "URGENT"}, []string{"permit", "urgent"}},
		{"drops invalid tokens", []string{"ok-tag", "bad tag", "worse!"}, []string{"ok-tag"}},
		{"dedupes preserving order", []string{"a1", "b2", "a1"}, []string{"a1", "b2"}},
		{"empty input", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnionTags(t *testing.T) {
	got := unionTags([]string{"permit", "custom"}, []string{"permit", "delayed"})
	want := []string{"permit", "custom", "delayed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unionTags = %v, want %v", got, want)
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
