package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/preview"
)

// runCLI executes the command tree and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func enabledRules(m mapping.FieldMapping) []string {
	var ids []string
	for _, r := range m.Fixes {
		if r.Enabled {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func TestFields(t *testing.T) {
	out, _, err := runCLI(t, "fields")
	require.NoError(t, err)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Account.Phone")
	assert.Contains(t, out, "FinancialAccount.FinServ__Status__c")
	assert.Contains(t, out, "Has Default, Restricted")

	out, _, err = runCLI(t, "fields", "--object", "financialaccount")
	require.NoError(t, err)
	assert.Contains(t, out, "FinancialAccount.FinServ__Balance__c")
	assert.NotContains(t, out, "Account.FirstName")
	assert.NotContains(t, out, "FinancialAccountTransaction.")

	out, _, err = runCLI(t, "fields", "--format", "json")
	require.NoError(t, err)
	var opts []catalog.Option
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Len(t, opts, catalog.Len())

	_, _, err = runCLI(t, "fields", "--object", "Opportunity")
	assert.ErrorContains(t, err, `no target fields for object "Opportunity"`)
}

func TestFixes(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{name: "target", args: []string{"--target", "Account.Phone"}, want: []string{"phoneNational", "phoneE164", "phoneFormat"}},
		{name: "type display name", args: []string{"--type", "Date/Time"}, want: []string{"dateISO", "dateEU"}},
		{name: "set name", args: []string{"--type", "currency"}, want: []string{"removeCurrency", "convertThousands"}},
		{name: "unknown type", args: []string{"--type", "money"}, wantErr: `unknown field type "money"`},
		{name: "unknown target", args: []string{"--target", "Account.Nope"}, wantErr: `unknown target field "Account.Nope"`},
		{name: "neither", args: nil, wantErr: "at least one of the flags"},
		{name: "both", args: []string{"--target", "Account.Phone", "--type", "phone"}, wantErr: "none of the others can be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, append([]string{"fixes"}, tt.args...)...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestFixes_JSON(t *testing.T) {
	out, _, err := runCLI(t, "fixes", "--type", "Currency", "--format", "json")
	require.NoError(t, err)
	var rules []fixes.Rule
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Equal(t, fixes.RulesFor(fixes.SetCurrency), rules)
}

func TestResolveRules_UnknownTargetIsTyped(t *testing.T) {
	_, err := resolveRules("Account.Nope", "")
	var unknown *catalog.UnknownFieldError
	assert.True(t, errors.As(err, &unknown))
}

func TestBuildMappings(t *testing.T) {
	ms, err := buildMappings(overrides{
		Target:  []string{"contact.homePhone=Account.PersonMobilePhone", "middleName=Account.MiddleName"},
		Disable: []string{"flags.doNotCall"},
		Fix:     []string{"lastName=toUpperCase", "accountType=defaultValue:Other"},
		Unfix:   []string{"customerId = toUpperCase"},
	})
	require.NoError(t, err)
	require.Len(t, ms, len(mapping.Seed())+1)

	phone := ms[mapping.IndexOf(ms, "contact.homePhone")]
	assert.Equal(t, "Account.PersonMobilePhone", phone.TargetField)

	added := ms[len(ms)-1]
	assert.Equal(t, "middleName", added.SourceField)
	assert.Equal(t, "Account.MiddleName", added.TargetField)
	assert.True(t, added.Enabled)

	assert.False(t, ms[mapping.IndexOf(ms, "flags.doNotCall")].Enabled)

	last := ms[mapping.IndexOf(ms, "lastName")]
	assert.Contains(t, enabledRules(last), fixes.ToUpperCase)
	assert.NotContains(t, enabledRules(last), fixes.ToTitleCase)

	acct := ms[mapping.IndexOf(ms, "accountType")]
	i := slices.IndexFunc(acct.Fixes, func(r fixes.Rule) bool { return r.ID == fixes.DefaultValue })
	require.GreaterOrEqual(t, i, 0)
	assert.True(t, acct.Fixes[i].Enabled)
	assert.Equal(t, "Other", acct.Fixes[i].Value)

	assert.NotContains(t, enabledRules(ms[mapping.IndexOf(ms, "customerId")]), fixes.ToUpperCase)
}

func TestBuildMappings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		o       overrides
		wantErr string
	}{
		{name: "target without field", o: overrides{Target: []string{"firstName="}}, wantErr: "not in source=value form"},
		{name: "unknown target field", o: overrides{Target: []string{"firstName=Account.Nope"}}, wantErr: "unknown target field"},
		{name: "disable unknown source", o: overrides{Disable: []string{"nickname"}}, wantErr: `no mapping for source field "nickname"`},
		{name: "fix without rule", o: overrides{Fix: []string{"firstName"}}, wantErr: "not in source=value form"},
		{name: "fix unknown rule", o: overrides{Fix: []string{"firstName=phoneE164"}}, wantErr: `unknown fix rule "phoneE164"`},
		{name: "value on toggle rule", o: overrides{Fix: []string{"firstName=trimWhitespace:x"}}, wantErr: "does not take a value"},
		{name: "unfix unknown source", o: overrides{Unfix: []string{"nickname=trimWhitespace"}}, wantErr: "no mapping for source field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMappings(tt.o)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func decodePreview(t *testing.T, out string) preview.Result {
	t.Helper()
	var res preview.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestPreview_JSON(t *testing.T) {
	out, _, err := runCLI(t, "preview", "--format", "json")
	require.NoError(t, err)
	res := decodePreview(t, out)
	require.NotEmpty(t, res.Transformed)
	assert.Equal(t, "ASHLEY", res.Raw[0]["firstName"])
	assert.Equal(t, "Ashley", res.Transformed[0]["Account.FirstName"])
	assert.Equal(t, "5250000.00", res.Transformed[0]["FinancialAccount.FinServ__Balance__c"])
	assert.Equal(t, "75000.00", res.Transformed[0]["Account.FinServ__AnnualIncome__pc"])
	assert.Equal(t, "220000.00", res.Transformed[1]["FinancialAccount.FinServ__Balance__c"])
	assert.Equal(t, len(mapping.Seed()), res.Summary.Columns)

	out, _, err = runCLI(t, "preview", "--format", "json", "--disable", "firstName", "--fix", "lastName=toUpperCase")
	require.NoError(t, err)
	res = decodePreview(t, out)
	assert.NotContains(t, res.Transformed[0], "Account.FirstName")
	assert.Equal(t, "GONZALEZ", res.Transformed[0]["Account.LastName"])
	assert.Equal(t, len(mapping.Seed())-1, res.Summary.Columns)
}

func TestPreview_Table(t *testing.T) {
	out, _, err := runCLI(t, "preview")
	require.NoError(t, err)
	assert.Contains(t, out, "ROW 1")
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, `"ASHLEY"`)
	assert.Contains(t, out, `"Ashley"`)
	assert.Regexp(t, `\d+ rows, \d+ columns: \d+ values fixed`, out)
}

func TestPreview_Generate(t *testing.T) {
	first, _, err := runCLI(t, "preview", "--format", "json", "--generate", "4", "--seed", "42")
	require.NoError(t, err)
	second, _, err := runCLI(t, "preview", "--format", "json", "--generate", "4", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, decodePreview(t, first).Summary.TotalRows)

	_, _, err = runCLI(t, "preview", "--generate", "-1")
	assert.ErrorContains(t, err, "must not be negative")
}

func TestPreview_SamplesFile(t *testing.T) {
	path := writeFile(t, "extract.csv", "firstName,contact.homePhone\nmARY,8109718698\n\n")
	out, _, err := runCLI(t, "preview", "--format", "json", "--samples", path)
	require.NoError(t, err)
	res := decodePreview(t, out)
	require.Len(t, res.Transformed, 1)
	assert.Equal(t, "Mary", res.Transformed[0]["Account.FirstName"])
	assert.Equal(t, "(810) 971-8698", res.Transformed[0]["Account.Phone"])

	_, _, err = runCLI(t, "preview", "--samples", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, _, err = runCLI(t, "preview", "--samples", writeFile(t, "empty.csv", ""))
	assert.ErrorContains(t, err, "csv has no header row")
}

func TestPreview_NoColumns(t *testing.T) {
	args := []string{"preview"}
	for _, src := range mapping.SourceFields() {
		args = append(args, "--disable", src)
	}
	out, _, err := runCLI(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "No mappings are enabled.\n", out)
}

func TestPreview_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "preview", "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "fieldmap.yaml", `
output:
  format: json
mappings:
  disable:
    - firstName
  fix:
    - lastName=toLowerCase
`)
	out, _, err := runCLI(t, "preview", "--config", cfg)
	require.NoError(t, err)
	res := decodePreview(t, out)
	assert.NotContains(t, res.Transformed[0], "Account.FirstName")
	assert.Equal(t, "gonzalez", res.Transformed[0]["Account.LastName"])

	// Flags win over the file.
	out, _, err = runCLI(t, "preview", "--config", cfg, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "ROW 1")

	_, _, err = runCLI(t, "preview", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("FIELDMAP_OUTPUT_FORMAT", "json")
	out, _, err := runCLI(t, "fixes", "--type", "phone")
	require.NoError(t, err)
	var rules []fixes.Rule
	assert.NoError(t, json.Unmarshal([]byte(out), &rules))
}

func readOutput(t *testing.T, data string) (map[string]int, [][]string) {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[h] = i
	}
	return idx, rows[1:]
}

func TestTransform_File(t *testing.T) {
	in := writeFile(t, "extract.csv", "firstName,contact.homePhone,accountType\nmARY,8109718698,SAV\nROBERT,(794) 507-4180,CHK\n")
	outPath := filepath.Join(t.TempDir(), "fsc.csv")

	stdout, stderr, err := runCLI(t, "transform", "--in", in, "--out", outPath, "--progress=false", "--log-level", "info")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "transform complete")
	assert.Contains(t, stderr, "rows=2")
	assert.Contains(t, stderr, "source field not in input")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	idx, rows := readOutput(t, string(data))
	require.Len(t, rows, 2)
	assert.Len(t, idx, len(mapping.Seed()))

	assert.Equal(t, "Mary", rows[0][idx["Account.FirstName"]])
	assert.Equal(t, "(810) 971-8698", rows[0][idx["Account.Phone"]])
	assert.Equal(t, "Savings", rows[0][idx["FinancialAccount.FinServ__FinancialAccountType__c"]])
	assert.Equal(t, "Robert", rows[1][idx["Account.FirstName"]])
	assert.Equal(t, "", rows[1][idx["Account.LastName"]])
}

func TestTransform_Stdout(t *testing.T) {
	in := writeFile(t, "extract.csv", "firstName,lastName\nmARY,smith\n")
	stdout, _, err := runCLI(t, "transform", "--in", in, "--disable", "flags.doNotCall", "--target", "lastName=Account.MiddleName")
	require.NoError(t, err)

	idx, rows := readOutput(t, stdout)
	require.Len(t, rows, 1)
	assert.NotContains(t, idx, "Account.PersonDoNotCall")
	assert.NotContains(t, idx, "Account.LastName")
	assert.Equal(t, "smith", rows[0][idx["Account.MiddleName"]])
}

func TestTransform_Errors(t *testing.T) {
	_, _, err := runCLI(t, "transform")
	assert.ErrorContains(t, err, `required flag(s) "in" not set`)

	_, _, err = runCLI(t, "transform", "--in", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, _, err = runCLI(t, "transform", "--in", writeFile(t, "bad.csv", "a,a\n1,2\n"))
	assert.ErrorContains(t, err, `duplicate header column "a"`)

	_, _, err = runCLI(t, "transform", "--in", writeFile(t, "x.csv", "a\n1\n"), "--fix", "nickname=trimWhitespace")
	assert.ErrorContains(t, err, "no mapping for source field")
}

func TestTransformCSV_NoColumns(t *testing.T) {
	ms := mapping.Seed()
	for i := range ms {
		ms[i] = mapping.SetMappingEnabled(ms[i], false)
	}
	var out bytes.Buffer
	_, err := transformCSV(strings.NewReader("firstName\nx\n"), 0, &out, ms, nil, false)
	assert.EqualError(t, err, "no mappings are enabled")
	assert.Zero(t, out.Len())
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseOutput(t *testing.T) {
	diskFull := errors.New("no space left on device")
	readFailed := errors.New("line 3: bare quote")

	tests := []struct {
		name    string
		closer  failingCloser
		err     error
		wantErr error
	}{
		{name: "clean", closer: failingCloser{}, err: nil, wantErr: nil},
		{name: "close error surfaces", closer: failingCloser{err: diskFull}, err: nil, wantErr: diskFull},
		{name: "transform error wins", closer: failingCloser{err: diskFull}, err: readFailed, wantErr: readFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := closeOutput(tt.closer, tt.err)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
