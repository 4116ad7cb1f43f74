package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/pkg/validators"
)

func TestParseDishForm(t *testing.T) {
	form := url.Values{
		"name":                  {"  Sinigang  "},
		"category":              {"Soup "},
		"servings":              {" 4 "},
		"duration":              {"45 mins"},
		"source":                {"Lola"},
		"ingredient_quantity[]": {"1", "2", "3"},
		"ingredient_unit[]":     {"kg", "pcs", "cups"},
		"ingredient_name[]":     {"Pork", "  ", "Water"},
		"ingredient_subs[]":     {"beef, , shrimp ", "", ""},
		"procedures[]":          {"Boil water", "   ", "Add pork"},
	}

	in, err := ParseDishForm(form, validators.NewValidator())
	require.NoError(t, err)

	assert.Equal(t, "Sinigang", in.Name)
	assert.Equal(t, "Soup", in.Category)
	assert.Equal(t, 4, in.Servings)
	assert.Equal(t, "45 mins", in.Duration)
	assert.Equal(t, "Lola", in.Source)
	assert.Equal(t, []models.Ingredient{
		{Quantity: "1", Unit: "kg", Name: "Pork", Substitutes: []string{"beef", "shrimp"}},
		{Quantity: "3", Unit: "cups", Name: "Water"},
	}, in.Ingredients)
	assert.Equal(t, []string{"Boil water", "Add pork"}, in.Procedures)
}

func TestParseDishFormShortParallelArrays(t *testing.T) {
	form := url.Values{
		"name":              {"Turon"},
		"ingredient_name[]": {"Banana", "Sugar"},
		"ingredient_unit[]": {"pcs"},
	}

	in, err := ParseDishForm(form, validators.NewValidator())
	require.NoError(t, err)
	require.Len(t, in.Ingredients, 2)
	assert.Equal(t, models.Ingredient{Unit: "pcs", Name: "Banana"}, in.Ingredients[0])
	assert.Equal(t, models.Ingredient{Name: "Sugar"}, in.Ingredients[1])
	assert.Equal(t, 0, in.Servings)
	assert.Empty(t, in.Procedures)
}

func TestParseDishFormRejects(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"non numeric servings", url.Values{"name": {"Adobo"}, "servings": {"four"}}},
		{"negative servings", url.Values{"name": {"Adobo"}, "servings": {"-2"}}},
		{"missing name", url.Values{"name": {"   "}, "servings": {"2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDishForm(tt.form, validators.NewValidator())
			assert.ErrorIs(t, err, ErrInvalidForm)
		})
	}
}

func TestSplitSubstitutes(t *testing.T) {
	assert.Nil(t, splitSubstitutes(""))
	assert.Nil(t, splitSubstitutes(" , ,"))
	assert.Equal(t, []string{"coconut milk", "cream"}, splitSubstitutes("coconut milk,cream,"))
}
