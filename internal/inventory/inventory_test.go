package inventory

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/appinv/appinv/internal/regsource"
)

const (
	nativeRoot = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`
	wowRoot    = `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`

	adobeCode = "{4A03706F-666A-4037-7777-5F2748764D10}"
)

// seededSource mirrors a realistic uninstall hive: full MSI entries, a
// name-only entry, a metadata-free legacy entry, an unreadable entry, and a
// product code present under both roots.
func seededSource() *regsource.Fake {
	return &regsource.Fake{
		SubKeys: map[string][]string{
			nativeRoot: {adobeCode, "Microsoft Edge", "LegacyTool", "{TEST-0001}", "BrokenEntry"},
			wowRoot:    {"{TEST-0001}", "7-Zip"},
		},
		Values: map[string]map[string]string{
			nativeRoot + `\` + adobeCode: {
				"DisplayName":     "Adobe Acrobat Reader DC",
				"UninstallString": `MsiExec.exe /X` + adobeCode,
				"InstallLocation": `C:\Program Files\Adobe\Acrobat Reader DC`,
				"DisplayVersion":  "23.006.20320",
				"Publisher":       "Adobe Inc.",
			},
			nativeRoot + `\Microsoft Edge`: {
				"DisplayName":    "Microsoft Edge",
				"DisplayVersion": "120.0.2210.91",
				"Publisher":      "Microsoft Corporation",
			},
			// LegacyTool has no values at all; the subkey name still yields a record.
			nativeRoot + `\{TEST-0001}`: {
				"DisplayName":    "Contoso Widgets (64-bit)",
				"DisplayVersion": "2.0.1",
			},
			wowRoot + `\{TEST-0001}`: {
				"DisplayName":    "Contoso Widgets (32-bit)",
				"DisplayVersion": "2.0.1",
			},
			wowRoot + `\7-Zip`: {
				"DisplayName":     "7-Zip 23.01 (x86)",
				"UninstallString": `"C:\Program Files (x86)\7-Zip\Uninstall.exe"`,
				"Publisher":       "Igor Pavlov",
			},
		},
		Unreadable: map[string]bool{
			nativeRoot + `\BrokenEntry`: true,
		},
	}
}

func TestListOneRecordPerReadableSubKey(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())
	records, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("ListInstalledApplications: %v", err)
	}

	// 5 native subkeys minus the unreadable one, plus 2 under WOW6432Node.
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d: %+v", len(records), records)
	}

	for _, rec := range records {
		if rec.ProductCode == "BrokenEntry" {
			t.Fatal("unreadable subkey should be silently skipped")
		}
	}
}

func TestListCopiesFieldsVerbatim(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())
	records, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("ListInstalledApplications: %v", err)
	}

	var adobe *ApplicationRecord
	for i := range records {
		if records[i].ProductCode == adobeCode {
			adobe = &records[i]
			break
		}
	}
	if adobe == nil {
		t.Fatalf("expected a record for %s", adobeCode)
	}

	if adobe.DisplayName != "Adobe Acrobat Reader DC" {
		t.Fatalf("DisplayName = %q", adobe.DisplayName)
	}
	if adobe.UninstallString != `MsiExec.exe /X`+adobeCode {
		t.Fatalf("UninstallString = %q", adobe.UninstallString)
	}
	if adobe.DisplayVersion != "23.006.20320" {
		t.Fatalf("DisplayVersion = %q", adobe.DisplayVersion)
	}
	if adobe.Publisher != "Adobe Inc." {
		t.Fatalf("Publisher = %q", adobe.Publisher)
	}
	if adobe.RegistryPath != nativeRoot+`\`+adobeCode {
		t.Fatalf("RegistryPath = %q", adobe.RegistryPath)
	}
}

func TestListAbsentValuesStayEmpty(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())
	records, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("ListInstalledApplications: %v", err)
	}

	var legacy *ApplicationRecord
	for i := range records {
		if records[i].ProductCode == "LegacyTool" {
			legacy = &records[i]
			break
		}
	}
	if legacy == nil {
		t.Fatal("expected LegacyTool record despite missing metadata")
	}

	if legacy.DisplayName != "" || legacy.UninstallString != "" || legacy.InstallLocation != "" ||
		legacy.DisplayVersion != "" || legacy.Publisher != "" {
		t.Fatalf("absent values should stay empty, got %+v", *legacy)
	}
}

func TestListFirstRootBeforeSecond(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())
	records, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("ListInstalledApplications: %v", err)
	}

	sawWow := false
	for _, rec := range records {
		fromWow := strings.HasPrefix(rec.RegistryPath, wowRoot)
		if sawWow && !fromWow {
			t.Fatalf("native-root record after WOW6432Node record: %+v", rec)
		}
		sawWow = sawWow || fromWow
	}
	if !sawWow {
		t.Fatal("expected records from the WOW6432Node root")
	}
}

func TestListNoDeduplicationAcrossRoots(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())
	records, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("ListInstalledApplications: %v", err)
	}

	count := 0
	for _, rec := range records {
		if rec.ProductCode == "{TEST-0001}" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected the dual-root product code twice, got %d", count)
	}
}

func TestListMissingRootContributesNothing(t *testing.T) {
	t.Parallel()

	src := seededSource()
	src.MissingRoots = map[string]bool{wowRoot: true}

	svc := New(src)
	records, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("a missing root must not fail the inventory: %v", err)
	}

	for _, rec := range records {
		if strings.HasPrefix(rec.RegistryPath, wowRoot) {
			t.Fatalf("unexpected record from missing root: %+v", rec)
		}
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 native records, got %d", len(records))
	}
}

func TestListIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	first, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := svc.ListInstalledApplications()
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("consecutive lists differ:\n%+v\n%+v", first, second)
	}
}

func TestFindEmptyIdentifierFailsBeforeRegistryAccess(t *testing.T) {
	t.Parallel()

	// A source that panics on use proves validation happens first.
	svc := New(nil)

	for _, mode := range []MatchMode{MatchName, MatchProductCode} {
		if _, err := svc.FindApplications("", mode); !errors.Is(err, ErrEmptyIdentifier) {
			t.Fatalf("mode %v: expected ErrEmptyIdentifier, got %v", mode, err)
		}
	}
}

func TestFindByNameCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	matches, err := svc.FindApplications("ADOBE", MatchName)
	if err != nil {
		t.Fatalf("FindApplications: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(matches))
	}
	if matches[0].DisplayName != "Adobe Acrobat Reader DC" {
		t.Fatalf("matched %q", matches[0].DisplayName)
	}
}

func TestFindByNameNoMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	matches, err := svc.FindApplications("definitely-not-installed", MatchName)
	if err != nil {
		t.Fatalf("no match must not be an error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestFindByProductCodeExactMatch(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	matches, err := svc.FindApplications(adobeCode, MatchProductCode)
	if err != nil {
		t.Fatalf("FindApplications: %v", err)
	}
	if len(matches) != 1 || matches[0].ProductCode != adobeCode {
		t.Fatalf("expected the single %s record, got %+v", adobeCode, matches)
	}

	// Trailing space breaks the exact-match contract.
	matches, err = svc.FindApplications(adobeCode+" ", MatchProductCode)
	if err != nil {
		t.Fatalf("FindApplications: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("trailing space should not match, got %+v", matches)
	}
}

func TestFindByProductCodeIgnoresCase(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	matches, err := svc.FindApplications(strings.ToLower(adobeCode), MatchProductCode)
	if err != nil {
		t.Fatalf("FindApplications: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("registry key names compare case-insensitively, got %d matches", len(matches))
	}
}

func TestFindPreservesInventoryOrder(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	matches, err := svc.FindApplications("{TEST-0001}", MatchProductCode)
	if err != nil {
		t.Fatalf("FindApplications: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected two matches, got %d", len(matches))
	}
	if !strings.HasPrefix(matches[0].RegistryPath, nativeRoot) ||
		!strings.HasPrefix(matches[1].RegistryPath, wowRoot) {
		t.Fatalf("matches out of inventory order: %+v", matches)
	}
}

func TestFieldExtractorsReturnOneElementPerMatch(t *testing.T) {
	t.Parallel()

	svc := New(seededSource())

	versions, err := svc.DisplayVersions("{TEST-0001}", MatchProductCode)
	if err != nil {
		t.Fatalf("DisplayVersions: %v", err)
	}
	if !reflect.DeepEqual(versions, []string{"2.0.1", "2.0.1"}) {
		t.Fatalf("versions = %v", versions)
	}

	// A match without the field contributes an empty element, not a shorter slice.
	uninstalls, err := svc.UninstallStrings("LegacyTool", MatchProductCode)
	if err != nil {
		t.Fatalf("UninstallStrings: %v", err)
	}
	if !reflect.DeepEqual(uninstalls, []string{""}) {
		t.Fatalf("uninstalls = %v", uninstalls)
	}

	// Zero matches: empty slice, nil error.
	none, err := svc.UninstallStrings("missing", MatchName)
	if err != nil {
		t.Fatalf("UninstallStrings: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no values, got %v", none)
	}
}

func TestFieldExtractorsRejectEmptyIdentifier(t *testing.T) {
	t.Parallel()

	svc := New(nil)

	if _, err := svc.UninstallStrings("", MatchName); !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}
	if _, err := svc.DisplayVersions("", MatchProductCode); !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}
}

func TestParseMatchMode(t *testing.T) {
	t.Parallel()

	cases := map[string]MatchMode{
		"name":         MatchName,
		"Name":         MatchName,
		"product":      MatchProductCode,
		"product-code": MatchProductCode,
		"PRODUCTCODE":  MatchProductCode,
		"guid":         MatchProductCode,
	}
	for in, want := range cases {
		got, err := ParseMatchMode(in)
		if err != nil {
			t.Fatalf("ParseMatchMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMatchMode(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseMatchMode("fuzzy"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
