package catalog

// Financial Services Cloud target fields, grouped by object.
// Types follow the org's field metadata, not the field names.

func init() {
	registerAccount()
	registerFinancialAccount()
	registerFinancialAccountTransaction()
}

func registerAccount() {
	for _, f := range []TargetField{
		{Name: "Account.FinServ__CustomerID__c", Type: Text},
		{Name: "Account.FinServ__TaxId__pc", Type: Text},
		{Name: "Account.FirstName", Type: Text},
		{Name: "Account.MiddleName", Type: Text},
		{Name: "Account.LastName", Type: Text},
		{Name: "Account.PersonBirthdate", Type: Date},
		{Name: "Account.FinServ__Gender__pc", Type: Picklist},
		{Name: "Account.FinServ__MaritalStatus__pc", Type: Picklist},
		{Name: "Account.FinServ__PrimaryLanguage__pc", Type: Picklist},
		{Name: "Account.FinServ__PrimaryCitizenship__pc", Type: Picklist},
		{Name: "Account.FinServ__NumberOfDependents__pc", Type: Number},
		{Name: "Account.FinServ__AnnualIncome__pc", Type: Currency},
		{Name: "Account.FinServ__Status__c", Type: Picklist},
		{Name: "Account.NumberOfEmployees", Type: Number},
		{Name: "Account.AnnualRevenue", Type: Currency},
		{Name: "Account.Phone", Type: Phone},
		{Name: "Account.PersonMobilePhone", Type: Phone},
		{Name: "Account.PersonDoNotCall", Type: Boolean},
		{Name: "Account.PersonHasOptedOutOfEmail", Type: Boolean},
		{Name: "Account.BillingStreet", Type: Text},
		{Name: "Account.BillingCity", Type: Text},
		{Name: "Account.BillingState", Type: Text},
		{Name: "Account.BillingPostalCode", Type: Text},
	} {
		Register(f)
	}
}

func registerFinancialAccount() {
	for _, f := range []TargetField{
		{Name: "FinancialAccount.FinServ__FinancialAccountNumber__c", Type: Text},
		{Name: "FinancialAccount.FinServ__FinancialAccountType__c", Type: Picklist},
		{Name: "FinancialAccount.FinServ__Description__c", Type: TextArea},
		{Name: "FinancialAccount.FinServ__Nickname__c", Type: Text},
		{Name: "FinancialAccount.FinServ__Status__c", Type: Picklist, HasDefaultValue: true, IsRestricted: true},
		{Name: "FinancialAccount.FinServ__BranchCode__c", Type: Text},
		{Name: "FinancialAccount.FinServ__OpenDate__c", Type: Date},
		{Name: "FinancialAccount.FinServ__CloseDate__c", Type: Date},
		{Name: "FinancialAccount.FinServ__Balance__c", Type: Currency},
		{Name: "FinancialAccount.FinServ__InterestRate__c", Type: Percent},
		{Name: "FinancialAccount.FinServ__AccruedInterest__c", Type: Currency},
		{Name: "FinancialAccount.FinServ__PaymentAmount__c", Type: Currency},
		{Name: "FinancialAccount.FinServ__PaymentDueDate__c", Type: Date},
		{Name: "FinancialAccount.FinServ__TotalCreditLimit__c", Type: Currency},
		{Name: "FinancialAccount.FinServ__LoanAmount__c", Type: Currency},
		{Name: "FinancialAccount.FinServ__Managed__c", Type: Boolean},
	} {
		Register(f)
	}
}

func registerFinancialAccountTransaction() {
	for _, f := range []TargetField{
		{Name: "FinancialAccountTransaction.FinServ__TransactionId__c", Type: Text},
		{Name: "FinancialAccountTransaction.FinServ__Amount__c", Type: Currency},
		{Name: "FinancialAccountTransaction.FinServ__Description__c", Type: Text},
		{Name: "FinancialAccountTransaction.FinServ__PostDate__c", Type: DateTime},
		{Name: "FinancialAccountTransaction.FinServ__TransactionDate__c", Type: DateTime},
		{Name: "FinancialAccountTransaction.FinServ__RunningBalance__c", Type: Currency},
		{Name: "FinancialAccountTransaction.FinServ__TransactionType__c", Type: Picklist},
	} {
		Register(f)
	}
}
