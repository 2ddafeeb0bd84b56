package cohort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCohort(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Victoria Spring 2021 Applications", "Victoria Spring 2021"},
		{"Fall 2022", "Fall 2022"},
		{"Notes", ""},
		{"Greater Vancouver Winter 2023 (responses)", "Greater Vancouver Winter 2023"},
		{"Summer 2020", "Summer 2020"},
		{"spring 2021", ""},
		{"Spring 21", ""},
		{"Form Responses 1", ""},
		{"", ""},
		{"Victoria Spring\u00a02021", "Victoria Spring 2021"},
		{"Victoria\u2009Fall\u3000 2024 intake", "Victoria Fall 2024"},
		{"Winter\t2025", "Winter 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCohort(tt.label))
		})
	}
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, "2021", ParseYear("Victoria Spring 2021"))
	assert.Equal(t, "2022", ParseYear("Fall 2022"))
	assert.Equal(t, "", ParseYear(""))
	assert.Equal(t, "", ParseYear("Spring 21"))
}

func TestSplitNameRole(t *testing.T) {
	tests := []struct {
		text string
		name string
		role string
	}{
		{"Jane Doe, Executive Director", "Jane Doe", "Executive Director"},
		{"Jane Doe - Staff", "Jane Doe", "Staff"},
		{"Jane Doe", "Jane Doe", ""},
		{"  Jane Doe  ", "Jane Doe", ""},
		{"Mary-Anne Lee, Board Member", "Mary-Anne Lee", "Board Member"},
		{"Mary-Anne Lee", "Mary", "Anne Lee"},
		{"Jane Doe, Chair, Board", "Jane Doe", "Chair, Board"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, role := SplitNameRole(tt.text)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.role, role)
		})
	}
}
