package transform

import "testing"

// ----------------------------------------------------------------------------
// Dates
// ----------------------------------------------------------------------------

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style DateStyle
		want  string
	}{
		{name: "US to ISO", input: "12/10/2025", style: DateISO, want: "2025-12-10"},
		{name: "ISO is idempotent", input: "2025-12-09", style: DateISO, want: "2025-12-09"},
		{name: "year-first with slashes", input: "2025/12/09", style: DateISO, want: "2025-12-09"},
		{name: "dashes month-first", input: "12-10-2025", style: DateISO, want: "2025-12-10"},
		{name: "zero padding", input: "1/5/2024", style: DateISO, want: "2024-01-05"},
		{name: "ISO to US", input: "2025-12-10", style: DateUS, want: "12/10/2025"},
		{name: "US to EU", input: "12/10/2025", style: DateEU, want: "10/12/2025"},
		{name: "time suffix kept", input: "12/10/2025 14:30:00", style: DateISO, want: "2025-12-10 14:30:00"},
		{name: "surrounding whitespace", input: "  2025-12-09 ", style: DateISO, want: "2025-12-09"},
		{name: "words pass through", input: "not-a-date", style: DateISO, want: "not-a-date"},
		{name: "two parts pass through", input: "12/2025", style: DateISO, want: "12/2025"},
		{name: "month out of range", input: "13/01/2025", style: DateISO, want: "13/01/2025"},
		{name: "day out of range", input: "2025-02-32", style: DateISO, want: "2025-02-32"},
		{name: "day the month lacks", input: "2/31/2025", style: DateISO, want: "2/31/2025"},
		{name: "april 31st", input: "2025-04-31", style: DateUS, want: "2025-04-31"},
		{name: "leap day", input: "2/29/2024", style: DateISO, want: "2024-02-29"},
		{name: "leap day in common year", input: "2/29/2025", style: DateISO, want: "2/29/2025"},
		{name: "two-digit year", input: "12/10/25", style: DateISO, want: "12/10/25"},
		{name: "empty", input: "", style: DateISO, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input, tt.style); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	for _, in := range []string{"12/10/2025", "2025-12-09", "3/7/1999"} {
		once := NormalizeDate(in, DateISO)
		if twice := NormalizeDate(once, DateISO); twice != once {
			t.Errorf("NormalizeDate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// ----------------------------------------------------------------------------
// Phones
// ----------------------------------------------------------------------------

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style PhoneStyle
		want  string
	}{
		{name: "dotted to NANP", input: "(810) 971.8698", style: PhoneNANP, want: "810-971-8698"},
		{name: "dotted to national", input: "(810) 971.8698", style: PhoneNational, want: "(810) 971-8698"},
		{name: "dotted to E164", input: "(810) 971.8698", style: PhoneE164, want: "+18109718698"},
		{name: "country prefix national", input: "+1 (794) 507-4180", style: PhoneNational, want: "+1 (794) 507-4180"},
		{name: "country prefix NANP", input: "+1 (794) 507-4180", style: PhoneNANP, want: "+1 794-507-4180"},
		{name: "country prefix E164", input: "+1 (794) 507-4180", style: PhoneE164, want: "+17945074180"},
		{name: "foreign prefix E164", input: "+44 20 7946 0958", style: PhoneE164, want: "+442079460958"},
		{name: "extension national", input: "810-971-8698 ext 42", style: PhoneNational, want: "(810) 971-8698 ext. 42"},
		{name: "extension E164", input: "810.971.8698 Ext. 7", style: PhoneE164, want: "+18109718698;ext=7"},
		{name: "x extension", input: "810-971-8698 x99", style: PhoneE164, want: "+18109718698;ext=99"},
		{name: "x extension no space", input: "(810) 971-8698X5", style: PhoneNANP, want: "810-971-8698 ext. 5"},
		{name: "too short", input: "555-1234", style: PhoneNANP, want: "555-1234"},
		{name: "no digits", input: "unknown", style: PhoneNational, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input, tt.style); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Booleans
// ----------------------------------------------------------------------------

func TestNormalizeBoolean(t *testing.T) {
	tests := []struct {
		input string
		style BoolStyle
		want  string
	}{
		{"Y", BoolText, "true"},
		{"no", BoolText, "false"},
		{"TRUE", Bool10, "1"},
		{"f", BoolYN, "N"},
		{" yes ", BoolYN, "Y"},
		{"0", BoolText, "false"},
		{"maybe", BoolText, "maybe"},
		{"", BoolYN, ""},
	}

	for _, tt := range tests {
		if got := NormalizeBoolean(tt.input, tt.style); got != tt.want {
			t.Errorf("NormalizeBoolean(%q, %d) = %q, want %q", tt.input, tt.style, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// Text
// ----------------------------------------------------------------------------

func TestTextCase(t *testing.T) {
	tests := []struct {
		input     string
		wantUpper string
		wantLower string
		wantTitle string
	}{
		{"abc123", "ABC123", "abc123", "Abc123"},
		{"JOHN DOE", "JOHN DOE", "john doe", "John Doe"},
		{"mary-jane  o'neil", "MARY-JANE  O'NEIL", "mary-jane  o'neil", "Mary-jane  O'neil"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		if got := Upper(tt.input); got != tt.wantUpper {
			t.Errorf("Upper(%q) = %q, want %q", tt.input, got, tt.wantUpper)
		}
		if got := Lower(tt.input); got != tt.wantLower {
			t.Errorf("Lower(%q) = %q, want %q", tt.input, got, tt.wantLower)
		}
		if got := Title(tt.input); got != tt.wantTitle {
			t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.wantTitle)
		}
	}
}

func TestDefaultIfEmpty(t *testing.T) {
	if got := DefaultIfEmpty("", "Unknown"); got != "Unknown" {
		t.Errorf("DefaultIfEmpty(\"\") = %q", got)
	}
	if got := DefaultIfEmpty(" ", "Unknown"); got != " " {
		t.Errorf("DefaultIfEmpty(\" \") = %q, whitespace is not empty", got)
	}
	if got := DefaultIfEmpty("x", "Unknown"); got != "x" {
		t.Errorf("DefaultIfEmpty(\"x\") = %q", got)
	}
}

func TestCodeToLabel(t *testing.T) {
	const (
		accountType = "FinancialAccount.FinServ__FinancialAccountType__c"
		txnType     = "FinancialAccountTransaction.FinServ__TransactionType__c"
		faStatus    = "FinancialAccount.FinServ__Status__c"
		language    = "Account.FinServ__PrimaryLanguage__pc"
	)

	tests := []struct {
		input string
		field string
		want  string
	}{
		{"CHK", accountType, "Checking"},
		{" sav ", accountType, "Savings"},
		{"C", txnType, "Credit"},
		{"C", faStatus, "Closed"},
		{"Y", language, "Yes"},
		{"ZZZ", accountType, "ZZZ"},
		{"Y", accountType, "Y"},
	}

	for _, tt := range tests {
		if got := CodeToLabel(tt.input, tt.field); got != tt.want {
			t.Errorf("CodeToLabel(%q, %s) = %q, want %q", tt.input, tt.field, got, tt.want)
		}
	}
}
