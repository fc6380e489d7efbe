package fixes

import "strings"

// Code tables translate source-system codes into target picklist labels.
// Fields with their own table never fall back to the general table, since
// the same code can mean different things on different fields ("C" is
// Credit on a transaction but Closed on an account status).
var fieldCodeTables = map[string]map[string]string{
	"FinancialAccount.FinServ__FinancialAccountType__c": accountTypes,
	"FinancialAccountTransaction.FinServ__TransactionType__c": {
		"D":  "Debit",
		"C":  "Credit",
		"DR": "Debit",
		"CR": "Credit",
	},
	"FinancialAccount.FinServ__Status__c": {
		"A": "Active",
		"I": "Inactive",
		"C": "Closed",
		"D": "Dormant",
		"F": "Frozen",
	},
	"Account.FinServ__Status__c": {
		"A": "Active",
		"I": "Inactive",
		"P": "Prospect",
	},
	"Account.FinServ__Gender__pc": {
		"M": "Male",
		"F": "Female",
		"U": "Unknown",
		"X": "Non-Binary",
	},
	"Account.FinServ__MaritalStatus__pc": {
		"S": "Single",
		"M": "Married",
		"D": "Divorced",
		"W": "Widowed",
		"P": "Domestic Partner",
		"X": "Separated",
	},
}

var accountTypes = map[string]string{
	"CHK":   "Checking",
	"SAV":   "Savings",
	"MMA":   "Money Market",
	"CD":    "Certificate of Deposit",
	"MORT":  "Mortgage",
	"LON":   "Loan",
	"HELOC": "Home Equity Line of Credit",
	"CC":    "Credit Card",
	"IRA":   "Individual Retirement Account",
}

// generalCodes applies to picklists without a table of their own.
var generalCodes = map[string]string{
	"Y": "Yes",
	"N": "No",
}

func init() {
	for code, label := range accountTypes {
		generalCodes[code] = label
	}
}

// CodeLabel returns the label for a code on a target field. Matching ignores
// surrounding whitespace and case. Returns false for unknown codes.
func CodeLabel(targetField, code string) (string, bool) {
	table, ok := fieldCodeTables[targetField]
	if !ok {
		table = generalCodes
	}
	label, ok := table[strings.ToUpper(strings.TrimSpace(code))]
	return label, ok
}

// CodeTable returns a copy of the table used for a target field.
func CodeTable(targetField string) map[string]string {
	table, ok := fieldCodeTables[targetField]
	if !ok {
		table = generalCodes
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
