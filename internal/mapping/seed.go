package mapping

import (
	"fmt"

	"github.com/JonMunkholm/fieldmap/internal/fixes"
)

// seedEntry is one default association from the FIS extract to FSC.
type seedEntry struct {
	source string
	target string
	enable []string // fixes switched on over the library defaults
}

// seedEntries lists one entry per known source field, in preview column order.
var seedEntries = []seedEntry{
	// Account
	{source: "customerId", target: "Account.FinServ__CustomerID__c", enable: []string{fixes.ToUpperCase}},
	{source: "firstName", target: "Account.FirstName", enable: []string{fixes.ToTitleCase}},
	{source: "lastName", target: "Account.LastName", enable: []string{fixes.ToTitleCase}},
	{source: "dateOfBirth", target: "Account.PersonBirthdate"},
	{source: "annualIncomeInThousands", target: "Account.FinServ__AnnualIncome__pc", enable: []string{fixes.ConvertThousands, fixes.DecimalPlaces}},
	{source: "contact.homePhone", target: "Account.Phone"},
	{source: "flags.doNotCall", target: "Account.PersonDoNotCall"},

	// Financial Account
	{source: "accountNumber", target: "FinancialAccount.FinServ__FinancialAccountNumber__c"},
	{source: "accountType", target: "FinancialAccount.FinServ__FinancialAccountType__c"},
	{source: "balances.currentBalance", target: "FinancialAccount.FinServ__Balance__c", enable: []string{fixes.DecimalPlaces}},
	{source: "dateOpened", target: "FinancialAccount.FinServ__OpenDate__c"},
	{source: "interest.currentInterestRate", target: "FinancialAccount.FinServ__InterestRate__c"},

	// Transactions
	{source: "transactionAmount", target: "FinancialAccountTransaction.FinServ__Amount__c", enable: []string{fixes.DecimalPlaces}},
	{source: "transactionDates.postingDate", target: "FinancialAccountTransaction.FinServ__PostDate__c"},
	{source: "debitCreditFlag", target: "FinancialAccountTransaction.FinServ__TransactionType__c"},
}

// Seed returns the default mapping list loaded when a wizard session starts.
// Each call returns an independent copy.
func Seed() []FieldMapping {
	out := make([]FieldMapping, 0, len(seedEntries))
	for _, e := range seedEntries {
		m, err := New(e.source, e.target)
		if err != nil {
			panic(fmt.Sprintf("seed mapping %s: %v", e.source, err))
		}
		for _, id := range e.enable {
			if m, err = ToggleFix(m, id, true); err != nil {
				panic(fmt.Sprintf("seed mapping %s: %v", e.source, err))
			}
		}
		out = append(out, m)
	}
	return out
}

// SourceFields returns the source field names of the seed list in order.
func SourceFields() []string {
	out := make([]string, len(seedEntries))
	for i, e := range seedEntries {
		out[i] = e.source
	}
	return out
}

// IndexOf returns the position of the mapping for sourceField, or -1.
func IndexOf(mappings []FieldMapping, sourceField string) int {
	for i, m := range mappings {
		if m.SourceField == sourceField {
			return i
		}
	}
	return -1
}
