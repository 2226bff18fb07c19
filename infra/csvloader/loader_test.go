package csvloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	data := "label,soh,c0,c1,c2,c3,c4,c5\n" +
		"new,1.0,3.0,0.5,0,0,0,0\n" +
		"eol,0.8,2.5,0.3,0,0,0,0\n"
	records, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Label != "new" || records[0].SoH != 1.0 {
		t.Fatalf("first record: %+v", records[0])
	}
	if records[1].Coefficients[1] != 0.3 {
		t.Fatalf("eol c1 = %v", records[1].Coefficients[1])
	}
}

func TestReadTableColumnOrderFromHeader(t *testing.T) {
	data := "c5,c4,c3,c2,c1,c0,soh,label\n" +
		"0,0,0,0,0.5,3.0,1.0,new\n"
	records, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if records[0].Coefficients[0] != 3.0 || records[0].Coefficients[1] != 0.5 {
		t.Fatalf("coefficients misordered: %v", records[0].Coefficients)
	}
}

func TestReadTableErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing column", "label,soh,c0,c1,c2,c3,c4\nnew,1.0,3,0,0,0,0\n"},
		{"non-numeric soh", "label,soh,c0,c1,c2,c3,c4,c5\nnew,healthy,3,0,0,0,0,0\n"},
		{"non-numeric coefficient", "label,soh,c0,c1,c2,c3,c4,c5\nnew,1.0,x,0,0,0,0,0\n"},
		{"short row", "label,soh,c0,c1,c2,c3,c4,c5\nnew,1.0,3,0,0\n"},
	}
	for _, tc := range cases {
		if _, err := Read(strings.NewReader(tc.data)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	data := "label,soh,c0,c1,c2,c3,c4,c5\nnew,1.0,3.0,0.5,0,0,0,0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	records, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(records) != 1 || records[0].Label != "new" {
		t.Fatalf("records: %+v", records)
	}
	if _, err := Load(filepath.Join(dir, "absent.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadSamples(t *testing.T) {
	data := "soc,voltage\n0,3.0\n0.5,3.25\n1,3.5\n"
	samples, err := ReadSamples(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[1].SoC != 0.5 || samples[1].Voltage != 3.25 {
		t.Fatalf("second sample: %+v", samples[1])
	}
	if _, err := ReadSamples(strings.NewReader("soc\n0\n")); err == nil {
		t.Fatalf("expected error for missing voltage column")
	}
}
