package samples

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/JonMunkholm/fieldmap/internal/transform"
)

// Generate returns n synthetic extract records in the same shape as Builtin,
// deliberately dirty: mixed case and padding, currency symbols, accounting
// negatives, K/M/MM shorthand, several date and phone layouts, and raw codes.
//
// The same non-zero seed always yields the same records. Seed 0 draws a
// random seed.
func Generate(n int, seed int64) []transform.Record {
	if n <= 0 {
		return []transform.Record{}
	}
	f := gofakeit.New(seed)

	out := make([]transform.Record, n)
	for i := range out {
		out[i] = transform.Record{
			"customerId":                   messyCase(f, fmt.Sprintf("cust-%06d", 1000+i)),
			"firstName":                    messyCase(f, f.FirstName()),
			"lastName":                     messyCase(f, f.LastName()),
			"dateOfBirth":                  messyDate(f, f.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC))),
			"annualIncomeInThousands":      fmt.Sprintf("%d", f.Number(20, 400)),
			"contact.homePhone":            messyPhone(f),
			"flags.doNotCall":              f.RandomString([]string{"Y", "N", "yes", "no", "1", "0", "true", "false"}),
			"accountNumber":                f.Numerify(f.RandomString([]string{"CHK", "sav", "MM", "cd", "LON"}) + "-########"),
			"accountType":                  f.RandomString([]string{"CHK", "SAV", "MMA", "CD", "MORT", "LON", "HELOC", "CC", "IRA"}),
			"balances.currentBalance":      messyAmount(f),
			"dateOpened":                   messyDate(f, f.DateRange(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))),
			"interest.currentInterestRate": fmt.Sprintf("%.2f%%", f.Float64Range(0.1, 9.5)),
			"transactionAmount":            messyTransaction(f),
			"transactionDates.postingDate": messyDate(f, f.DateRange(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))),
			"debitCreditFlag":              f.RandomString([]string{"D", "C", "DR", "CR"}),
		}
	}
	return out
}

func messyCase(f *gofakeit.Faker, s string) string {
	switch f.Number(0, 3) {
	case 0:
		return strings.ToUpper(s)
	case 1:
		return strings.ToLower(s)
	case 2:
		return "  " + s + "  "
	default:
		return s
	}
}

func messyDate(f *gofakeit.Faker, t time.Time) string {
	layouts := []string{"01/02/2006", "2006-01-02", "2006/01/02", "1/2/2006", "01-02-2006"}
	return t.Format(layouts[f.Number(0, len(layouts)-1)])
}

func messyPhone(f *gofakeit.Faker) string {
	d := f.Numerify("##########")
	d = fmt.Sprintf("%d%s", f.Number(2, 9), d[1:])
	area, exch, line := d[:3], d[3:6], d[6:]
	switch f.Number(0, 5) {
	case 0:
		return fmt.Sprintf("(%s) %s.%s", area, exch, line)
	case 1:
		return fmt.Sprintf("+1 (%s) %s-%s", area, exch, line)
	case 2:
		return fmt.Sprintf("%s.%s.%s", area, exch, line)
	case 3:
		return fmt.Sprintf("%s-%s-%s ext %d", area, exch, line, f.Number(1, 999))
	case 4:
		return d
	default:
		return fmt.Sprintf("%s-%s", exch, line)
	}
}

func messyAmount(f *gofakeit.Faker) string {
	switch f.Number(0, 5) {
	case 0:
		return fmt.Sprintf("$%s", withCommas(f.Number(100, 9_999_999)))
	case 1:
		return fmt.Sprintf("%.1fM", f.Float64Range(0.5, 99))
	case 2:
		return fmt.Sprintf("%dMM", f.Number(1, 50))
	case 3:
		return fmt.Sprintf("$%dK", f.Number(1, 999))
	case 4:
		return fmt.Sprintf("USD%d", f.Number(1000, 500000))
	default:
		return "N/A"
	}
}

func messyTransaction(f *gofakeit.Faker) string {
	cents := f.Number(0, 99)
	whole := withCommas(f.Number(1, 250_000))
	switch f.Number(0, 3) {
	case 0:
		return fmt.Sprintf("($%s.%02d)", whole, cents)
	case 1:
		return fmt.Sprintf("(%d)", f.Number(1, 20000))
	case 2:
		return fmt.Sprintf("$%s.%02d", whole, cents)
	default:
		return fmt.Sprintf("$%s", whole)
	}
}

func withCommas(n int) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
