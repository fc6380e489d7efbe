// Package samples supplies the source records shown in previews: a built-in
// FIS extract, a seeded generator of messy records and a CSV reader.
package samples

import (
	"github.com/JonMunkholm/fieldmap/internal/transform"
)

// Builtin returns the reference FIS extract used when the caller supplies no
// records. Keys are the seed mapping source fields. Each call returns fresh
// records.
func Builtin() []transform.Record {
	out := make([]transform.Record, len(builtinRows))
	for i, row := range builtinRows {
		rec := make(transform.Record, len(row))
		for k, v := range row {
			rec[k] = v
		}
		out[i] = rec
	}
	return out
}

var builtinRows = []map[string]string{
	{
		"customerId":                   "CUST-001234",
		"firstName":                    "ASHLEY",
		"lastName":                     "GONZALEZ",
		"dateOfBirth":                  "03/15/1985",
		"annualIncomeInThousands":      "75",
		"contact.homePhone":            "(810) 971.8698",
		"flags.doNotCall":              "N",
		"accountNumber":                "CHK-98765432",
		"accountType":                  "CHK",
		"balances.currentBalance":      "$5,250,000",
		"dateOpened":                   "01/15/2020",
		"interest.currentInterestRate": "2.5%",
		"transactionAmount":            "($1,500.00)",
		"transactionDates.postingDate": "12/10/2025",
		"debitCreditFlag":              "D",
	},
	{
		"customerId":                   "  CUST-001235  ",
		"firstName":                    "robert",
		"lastName":                     "HERNANDEZ",
		"dateOfBirth":                  "1990-07-22",
		"annualIncomeInThousands":      "125",
		"contact.homePhone":            "+1 (794) 507-4180",
		"flags.doNotCall":              "Y",
		"accountNumber":                "sav-12345678",
		"accountType":                  "SAV",
		"balances.currentBalance":      "USD220000",
		"dateOpened":                   "2019-03-10",
		"interest.currentInterestRate": "3.75%",
		"transactionAmount":            "$2,500.00",
		"transactionDates.postingDate": "2025-12-09",
		"debitCreditFlag":              "C",
	},
	{
		"customerId":                   "CUST-001236",
		"firstName":                    "DAVID",
		"lastName":                     "BROWN",
		"dateOfBirth":                  "11/30/1978",
		"annualIncomeInThousands":      "95",
		"contact.homePhone":            "313.555.0142",
		"flags.doNotCall":              "false",
		"accountNumber":                "CHK-55566677",
		"accountType":                  "CHK",
		"balances.currentBalance":      "95M",
		"dateOpened":                   "06/20/2018",
		"interest.currentInterestRate": "1.25%",
		"transactionAmount":            "(500)",
		"transactionDates.postingDate": "12/08/2025",
		"debitCreditFlag":              "D",
	},
	{
		"customerId":                   "CUST-001237",
		"firstName":                    "JENNIFER",
		"lastName":                     "MARTINEZ",
		"dateOfBirth":                  "05/08/1992",
		"annualIncomeInThousands":      "200",
		"contact.homePhone":            "248-555-0199 ext 12",
		"flags.doNotCall":              "0",
		"accountNumber":                "MM-44455566",
		"accountType":                  "MMA",
		"balances.currentBalance":      "$1.5M",
		"dateOpened":                   "09/12/2021",
		"interest.currentInterestRate": "4.00%",
		"transactionAmount":            "$10,000.00",
		"transactionDates.postingDate": "12/07/2025",
		"debitCreditFlag":              "C",
	},
	{
		"customerId":                   "  cust-001238",
		"firstName":                    "michael",
		"lastName":                     "wilson",
		"dateOfBirth":                  "1988/02/14",
		"annualIncomeInThousands":      "85.5",
		"contact.homePhone":            "5865550123",
		"flags.doNotCall":              "yes",
		"accountNumber":                "cd-77788899",
		"accountType":                  "CD",
		"balances.currentBalance":      "$250,000",
		"dateOpened":                   "2022/01/01",
		"interest.currentInterestRate": "5.25%",
		"transactionAmount":            "$250,000.00",
		"transactionDates.postingDate": "2024-01-01",
		"debitCreditFlag":              "C",
	},
	{
		"customerId":                   "CUST-001239",
		"firstName":                    "  SARAH  ",
		"lastName":                     "  JOHNSON  ",
		"dateOfBirth":                  "12/25/1995",
		"annualIncomeInThousands":      "150",
		"contact.homePhone":            "555-0100",
		"flags.doNotCall":              "",
		"accountNumber":                "LON-11122233",
		"accountType":                  "MORT",
		"balances.currentBalance":      "$425,000.00",
		"dateOpened":                   "03/15/2023",
		"interest.currentInterestRate": "6.875%",
		"transactionAmount":            "($2,847.33)",
		"transactionDates.postingDate": "12/01/2025",
		"debitCreditFlag":              "D",
	},
	{
		"customerId":                   "CUST-001240",
		"firstName":                    "CHRISTOPHER",
		"lastName":                     "ANDERSON",
		"dateOfBirth":                  "08/17/1982",
		"annualIncomeInThousands":      "300",
		"contact.homePhone":            "1-734-555-0187",
		"flags.doNotCall":              "N",
		"accountNumber":                "CHK-99900011",
		"accountType":                  "CHK",
		"balances.currentBalance":      "12MM",
		"dateOpened":                   "11/30/2017",
		"interest.currentInterestRate": "0.50%",
		"transactionAmount":            "$50,000",
		"transactionDates.postingDate": "12/05/2025",
		"debitCreditFlag":              "C",
	},
	{
		"customerId":                   "CUST-001241",
		"firstName":                    "amanda",
		"lastName":                     "TAYLOR",
		"dateOfBirth":                  "04/03/1990",
		"annualIncomeInThousands":      "180",
		"contact.homePhone":            "(517) 555-0166",
		"flags.doNotCall":              "Y",
		"accountNumber":                "SAV-22233344",
		"accountType":                  "SAV",
		"balances.currentBalance":      "$875K",
		"dateOpened":                   "07/22/2019",
		"interest.currentInterestRate": "3.25%",
		"transactionAmount":            "(15000)",
		"transactionDates.postingDate": "12/04/2025",
		"debitCreditFlag":              "D",
	},
}
