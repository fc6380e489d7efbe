package fixes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
)

func ids(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.ID
	}
	return out
}

func TestDefaultRuleSet_Order(t *testing.T) {
	tests := []struct {
		typ  catalog.SemanticType
		want []string
	}{
		{catalog.Currency, []string{RemoveCurrency, HandleNegative, ConvertNotation, ConvertThousands, DecimalPlaces}},
		{catalog.Date, []string{DateISO, DateUS, DateEU}},
		{catalog.DateTime, []string{DateISO, DateUS, DateEU}},
		{catalog.Picklist, []string{TrimWhitespace, CodesToLabels, DefaultValue}},
		{catalog.Number, []string{RemoveCommas, ConvertNotation, DecimalPlaces}},
		{catalog.Percent, []string{RemovePercent, PercentToDecimal}},
		{catalog.Text, []string{TrimWhitespace, ToUpperCase, ToLowerCase, ToTitleCase, DefaultValue}},
		{catalog.TextArea, []string{TrimWhitespace, ToUpperCase, ToLowerCase, ToTitleCase, DefaultValue}},
		{catalog.Phone, []string{TrimWhitespace, PhoneNational, PhoneNANP, PhoneE164}},
		{catalog.Boolean, []string{BooleanText, BooleanYN, Boolean10}},
		{catalog.SemanticType(99), []string{TrimWhitespace, ToUpperCase, ToLowerCase, ToTitleCase, DefaultValue}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(DefaultRuleSet(tt.typ)))
		})
	}
}

func TestDefaultRuleSet_FreshCopies(t *testing.T) {
	a := DefaultRuleSet(catalog.Currency)
	a[0].Enabled = false
	a[3].Enabled = true

	b := DefaultRuleSet(catalog.Currency)
	assert.True(t, b[0].Enabled)
	assert.False(t, b[3].Enabled)
}

func TestDefaultRuleSet_AtMostOnePerGroup(t *testing.T) {
	for _, s := range Sets() {
		enabled := make(map[string]int)
		for _, r := range RulesFor(s) {
			if r.Group != "" && r.Enabled {
				enabled[r.Group]++
			}
		}
		for g, n := range enabled {
			assert.LessOrEqual(t, n, 1, "set %s group %s", s, g)
		}
	}
}

func TestRecommendedMirrorsDefault(t *testing.T) {
	for _, s := range Sets() {
		for _, r := range RulesFor(s) {
			assert.Equal(t, r.Enabled, r.Recommended, "set %s rule %s", s, r.ID)
		}
	}
}

func TestGroupOf(t *testing.T) {
	g, err := GroupOf(PhoneE164)
	require.NoError(t, err)
	assert.Equal(t, GroupPhoneFormat, g)

	g, err = GroupOf(TrimWhitespace)
	require.NoError(t, err)
	assert.Empty(t, g)

	g, err = GroupOf(PercentToDecimal)
	require.NoError(t, err)
	assert.Equal(t, GroupPercentFormat, g)

	_, err = GroupOf("nope")
	var ure *UnknownRuleError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "nope", ure.RuleID)
}

func TestDefaultsForField(t *testing.T) {
	rules, err := DefaultsForField("FinancialAccount.FinServ__InterestRate__c")
	require.NoError(t, err)
	assert.Equal(t, []string{RemovePercent, PercentToDecimal}, ids(rules))

	_, err = DefaultsForField("Nope.Field")
	var ufe *catalog.UnknownFieldError
	assert.True(t, errors.As(err, &ufe))
}

func TestDefaultValueIsValueInput(t *testing.T) {
	r, ok := Lookup(DefaultValue)
	require.True(t, ok)
	assert.Equal(t, ValueInput, r.Kind)
}

func TestCodeLabel(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		code   string
		want   string
		wantOK bool
	}{
		{"account type", "FinancialAccount.FinServ__FinancialAccountType__c", "CHK", "Checking", true},
		{"account type lower case", "FinancialAccount.FinServ__FinancialAccountType__c", " mma ", "Money Market", true},
		{"debit", "FinancialAccountTransaction.FinServ__TransactionType__c", "D", "Debit", true},
		{"credit", "FinancialAccountTransaction.FinServ__TransactionType__c", "C", "Credit", true},
		{"status closed not credit", "FinancialAccount.FinServ__Status__c", "C", "Closed", true},
		{"field table has no fallback", "FinancialAccountTransaction.FinServ__TransactionType__c", "CHK", "", false},
		{"general table", "Account.FinServ__PrimaryLanguage__pc", "SAV", "Savings", true},
		{"unknown", "FinancialAccount.FinServ__FinancialAccountType__c", "ZZZ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodeLabel(tt.field, tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_Text(t *testing.T) {
	for _, k := range []Kind{Toggle, ExclusiveChoice, ValueInput} {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("radio")))
}
