package master

import "testing"

const ccdFixture = `FIPST,STATENAME,ST_LEAID,LEAID,LEA_NAME,LEA_TYPE
04,ARIZONA,AZ-4470,0400270,Camp Verde Unified District,1
04,ARIZONA,AZ-4469,0402860,Humboldt Unified District,1
04,ARIZONA,AZ-9001,0409999,Some Charter Holder,7
06,CALIFORNIA,CA-12345,0612345,Out Of State District,1
04,ARIZONA,,0400000,No State ID,1
`

func TestLoadDirectory(t *testing.T) {
	path := writeFixture(t, "ccd.csv", ccdFixture)
	entries, err := LoadDirectory(path)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (regular Arizona districts only): %v", len(entries), entries)
	}

	e, ok := entries["4470"]
	if !ok {
		t.Fatal("entry 4470 not found")
	}
	if e.LEAName != "Camp Verde Unified District" {
		t.Errorf("LEAName = %q", e.LEAName)
	}
	if e.LEAID != "0400270" {
		t.Errorf("LEAID = %q", e.LEAID)
	}

	if _, ok := entries["9001"]; ok {
		t.Error("non-regular LEA type should be excluded")
	}
	if _, ok := entries["12345"]; ok {
		t.Error("out-of-state row should be excluded")
	}
}

func TestLoadDirectoryMissingColumn(t *testing.T) {
	path := writeFixture(t, "ccd.csv", "FIPST,ST_LEAID\n04,AZ-4470\n")
	if _, err := LoadDirectory(path); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestLoadDirectoryMissingFile(t *testing.T) {
	if _, err := LoadDirectory("does/not/exist.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
