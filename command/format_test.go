package command

import (
	"strings"
	"testing"
)

type testDatum struct {
	name  string
	value int
}

type testCtx bool

var testFormatters = map[string]Formatter[testDatum, testCtx]{
	"name": {
		func(d testDatum, _ testCtx) string { return d.name },
		"The name",
	},
	"value": {
		func(d testDatum, _ testCtx) string {
			if d.value == 10 {
				return "ten"
			}
			return "one"
		},
		"The value",
	},
}

var testAliases = map[string][]string{
	"all": []string{"name", "value"},
}

var testData = []testDatum{
	{"first", 10},
	{"second longer", 1},
}

func TestParseFormatSpec(t *testing.T) {
	fields, others, err := ParseFormatSpec("name,value", "", testFormatters, testAliases)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(fields, ",") != "name,value" {
		t.Fatalf("Got %v wanted defaults", fields)
	}
	if len(others) != 0 {
		t.Fatalf("Got %v wanted no others", others)
	}

	fields, others, err = ParseFormatSpec("name", "all,csvnamed,header", testFormatters, testAliases)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(fields, ",") != "name,value" {
		t.Fatalf("Got %v wanted alias expansion", fields)
	}
	if !others["csvnamed"] || !others["header"] {
		t.Fatalf("Got %v wanted csvnamed and header", others)
	}

	_, others, _ = ParseFormatSpec("name", "help", testFormatters, testAliases)
	if !others["help"] {
		t.Fatalf("Got %v wanted help", others)
	}
}

func TestStandardFormatOptions(t *testing.T) {
	opts := StandardFormatOptions(map[string]bool{}, DefaultFixed)
	if !opts.Fixed || !opts.Header || opts.Csv || opts.Json || opts.Awk {
		t.Fatalf("Bad defaulted options %v", *opts)
	}

	opts = StandardFormatOptions(map[string]bool{"csvnamed": true}, DefaultFixed)
	if !opts.Csv || !opts.Named || opts.Header {
		t.Fatalf("Bad csvnamed options %v", *opts)
	}

	opts = StandardFormatOptions(map[string]bool{"json": true, "header": true}, DefaultFixed)
	if !opts.Json || opts.Header {
		t.Fatalf("Bad json options %v", *opts)
	}

	opts = StandardFormatOptions(map[string]bool{"tag:xyzzy": true}, DefaultFixed)
	if opts.Tag != "xyzzy" {
		t.Fatalf("Got tag %q wanted xyzzy", opts.Tag)
	}
}

func TestFormatDataFixed(t *testing.T) {
	var out strings.Builder
	FormatData(
		&out,
		[]string{"name", "value"},
		testFormatters,
		&FormatOptions{Fixed: true, Header: true},
		testData,
		testCtx(false),
	)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if lines[0] != "name           value" {
		t.Fatalf("Header: Got %q", lines[0])
	}
	if lines[1] != "first          ten" {
		t.Fatalf("Line: Got %q", lines[1])
	}
	if lines[2] != "second longer  one" {
		t.Fatalf("Line: Got %q", lines[2])
	}
}

func TestFormatDataCsvNamed(t *testing.T) {
	var out strings.Builder
	FormatData(
		&out,
		[]string{"name", "value"},
		testFormatters,
		&FormatOptions{Csv: true, Named: true, Header: true},
		testData,
		testCtx(false),
	)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if lines[0] != "name,value" {
		t.Fatalf("Header: Got %q", lines[0])
	}
	if lines[1] != "name=first,value=ten" {
		t.Fatalf("Line: Got %q", lines[1])
	}
	if lines[2] != "name=second longer,value=one" {
		t.Fatalf("Line: Got %q", lines[2])
	}
}

func TestFormatDataJson(t *testing.T) {
	var out strings.Builder
	FormatData(
		&out,
		[]string{"name", "value"},
		testFormatters,
		&FormatOptions{Json: true},
		testData,
		testCtx(false),
	)
	want := `[{"name":"first","value":"ten"},{"name":"second longer","value":"one"}]`
	if out.String() != want {
		t.Fatalf("Got %s wanted %s", out.String(), want)
	}
}

func TestFormatDataAwk(t *testing.T) {
	var out strings.Builder
	FormatData(
		&out,
		[]string{"name", "value"},
		testFormatters,
		&FormatOptions{Awk: true},
		testData,
		testCtx(false),
	)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if lines[0] != "first ten" {
		t.Fatalf("Line: Got %q", lines[0])
	}
	// Spaces within fields become underscores.
	if lines[1] != "second_longer one" {
		t.Fatalf("Line: Got %q", lines[1])
	}
}
