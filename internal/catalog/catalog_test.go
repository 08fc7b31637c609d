package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    ActionType
		wantErr bool
	}{
		{"multiple-choice", TypeMultipleChoice, false},
		{"open-text", TypeOpenText, false},
		{"external-link", TypeExternalLink, false},
		{"date-selection", TypeDateSelection, false},
		{"", "", true},
		{"quiz", "", true},
		{"Multiple-Choice", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestActionTypeTableIsTotal(t *testing.T) {
	all := []ActionType{
		TypeMultipleChoice, TypeOpenText, TypeRating,
		TypeExternalLink, TypeContentEngagement, TypeImageUpload,
		TypeSecretCode, TypeDateSelection,
	}
	for _, at := range all {
		assert.True(t, at.Valid(), "%s missing from type table", at)
		assert.NotEmpty(t, at.Key(), "%s has no wire key", at)
		assert.NotEmpty(t, at.Section(), "%s has no section", at)
	}

	assert.Equal(t, "question-multiple-choice", TypeMultipleChoice.Key())
	assert.Equal(t, SectionQuestion, TypeMultipleChoice.Section())
	assert.True(t, TypeMultipleChoice.SeedsAnswer())

	assert.Equal(t, SectionInteraction, TypeExternalLink.Section())
	assert.False(t, TypeExternalLink.SeedsAnswer())
	assert.False(t, TypeOpenText.SeedsAnswer())
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Len(t, c.Questions, 5)
	assert.Len(t, c.Interactions, 5)

	for _, tmpl := range c.Questions {
		assert.Equal(t, SectionQuestion, tmpl.Type.Section(), "template %q", tmpl.Title)
		assert.NotEmpty(t, tmpl.Title)
	}
	for _, tmpl := range c.Interactions {
		assert.Equal(t, SectionInteraction, tmpl.Type.Section(), "template %q", tmpl.Title)
	}
}

func TestCatalogFind(t *testing.T) {
	c := Default()

	tmpl := c.Find("Multiple Choice")
	require.NotNil(t, tmpl)
	assert.Equal(t, TypeMultipleChoice, tmpl.Type)

	tmpl = c.Find("Visit an external link")
	require.NotNil(t, tmpl)
	assert.Equal(t, TypeExternalLink, tmpl.Type)

	assert.Nil(t, c.Find("nope"))
}
