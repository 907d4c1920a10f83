package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/smsledger/internal/model"
)

func TestClassify(t *testing.T) {
	tax := Default()
	tests := []struct {
		text string
		want model.Category
	}{
		{"Rs 450.00 debited from your account at SWIGGY on 08-Feb-26", model.CategoryFood},
		{"Your A/c XX1234 debited with INR 1200.00 on 07-Feb-26 for Amazon transaction", model.CategoryShopping},
		{"Rs 85.00 spent at UBER on 07-Feb-26 via Card ending 5678", model.CategoryTransport},
		{"NETFLIX subscription paid", model.CategoryEntertainment},
		{"Airtel recharge", model.CategoryBills},
		{"APOLLO PHARMACY", model.CategoryHealthcare},
		{"BIGBASKET order", model.CategoryGroceries},
		{"UDEMY", model.CategoryEducation},
		{"transfer to savings", model.CategoryOther},
		{"", model.CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tax.Classify(tt.text), "Classify(%q)", tt.text)
	}
}

func TestClassify_OrderBreaksTies(t *testing.T) {
	tax := Default()
	// Transportation precedes Shopping, regardless of position in the text.
	assert.Equal(t, model.CategoryTransport, tax.Classify("amazon gift card bought with uber credits"))
	assert.Equal(t, model.CategoryTransport, tax.Classify("uber and amazon"))

	swapped := New([]Rule{
		{Category: model.CategoryShopping, Keywords: []string{"amazon"}},
		{Category: model.CategoryTransport, Keywords: []string{"uber"}},
	}, model.CategoryOther)
	assert.Equal(t, model.CategoryShopping, swapped.Classify("uber and amazon"))
}

func TestClassify_Deterministic(t *testing.T) {
	tax := Default()
	text := "Paid Rs 300 at DOMINOS PIZZA via UPI"
	first := tax.Classify(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, tax.Classify(text))
	}
}

func TestNew_LowercasesAndCopies(t *testing.T) {
	rules := []Rule{{Category: "Pets", Keywords: []string{"PetSmart"}}}
	tax := New(rules, "Misc")
	rules[0].Keywords[0] = "changed"

	assert.Equal(t, model.Category("Pets"), tax.Classify("PETSMART #42"))
	assert.Equal(t, model.Category("Misc"), tax.Classify("changed"))
}

func TestNamesAndExists(t *testing.T) {
	tax := Default()
	names := tax.Names()
	assert.Len(t, names, 9)
	assert.Equal(t, model.CategoryFood, names[0])
	assert.Equal(t, model.CategoryOther, names[len(names)-1])

	assert.True(t, tax.Exists(model.CategoryGroceries))
	assert.True(t, tax.Exists(model.CategoryOther))
	assert.False(t, tax.Exists("Travel"))
	assert.Equal(t, model.CategoryOther, tax.Fallback())
}

func TestRules_ReturnsCopy(t *testing.T) {
	tax := Default()
	rules := tax.Rules()
	rules[0].Keywords[0] = "nothing-matches-this"
	assert.Equal(t, model.CategoryFood, tax.Classify("swiggy"))
}
