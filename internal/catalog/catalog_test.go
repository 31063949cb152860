package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

var testRecords = []Record{
	{Symbol: "AAPL", Name: "Apple Inc.", Kind: "Stock"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Kind: "Stock"},
	{Symbol: "SNAP", Name: "Snap Inc.", Kind: "Stock"},
	{Symbol: "SPY", Name: "SPDR S&P 500 ETF", Kind: "ETF"},
}

func TestFilterEmptyQuery(t *testing.T) {
	c := New(testRecords)
	got := c.Filter("")
	if len(got) != len(testRecords) {
		t.Fatalf("empty query returned %d records, want %d", len(got), len(testRecords))
	}
	for i := range got {
		if got[i] != testRecords[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], testRecords[i])
		}
	}
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	c := New(testRecords)
	got := c.Filter("ap")
	// AAPL matches on symbol, SNAP on symbol, Apple on name. Catalog order.
	want := []string{"AAPL", "SNAP"}
	if len(got) != len(want) {
		t.Fatalf("Filter(ap) returned %d records, want %d: %+v", len(got), len(want), got)
	}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Errorf("result %d = %s, want %s", i, got[i].Symbol, sym)
		}
	}
}

func TestFilterMatchesName(t *testing.T) {
	c := New(testRecords)
	got := c.Filter("microsoft")
	if len(got) != 1 || got[0].Symbol != "MSFT" {
		t.Fatalf("Filter(microsoft) = %+v, want MSFT", got)
	}
}

func TestFilterNoMatch(t *testing.T) {
	c := New(testRecords)
	if got := c.Filter("zzzz"); len(got) != 0 {
		t.Errorf("Filter(zzzz) = %+v, want empty", got)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	data := "Ticker,Name,Type\nAAPL,Apple Inc.,Stock\nSPY,SPDR S&P 500 ETF,ETF\n,skipped,Stock\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(records))
	}
	if records[0] != (Record{Symbol: "AAPL", Name: "Apple Inc.", Kind: "Stock"}) {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].Kind != "ETF" {
		t.Errorf("record 1 kind = %q, want ETF", records[1].Kind)
	}
}

func TestLoadCSVPositionalFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	data := "a,b,c\nTSLA,Tesla Inc.,Stock\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV returned error: %v", err)
	}
	if len(records) != 1 || records[0].Symbol != "TSLA" {
		t.Fatalf("records = %+v, want one TSLA row", records)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("LoadCSV on a missing file returned nil error")
	}
}
