package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"patchgen/internal/resolve"
)

const testListing = `public class Foo // TypeDefIndex: 4242
{
	// Fields
	private int count; // 0x10

	// RVA: 0x1234 Offset: 0x1234 VA: 0x7101234
	public void Bar() { }
}
`

const testExport = ".text.1:71004F00\tsub_7101234\tCMP W8, #0x1A\n" +
	".text.1:71004F04\tMusicSelect$$GetID\tMOV W0, #0x1A\n" +
	".rodata:71104F00\tsub_7101234\tCMP W8, #0x1A\n"

func TestRunResolve(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "occurrences.txt")
	listingPath := filepath.Join(dir, "dump.cs")
	if err := os.WriteFile(exportPath, []byte(testExport), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(listingPath, []byte(testListing), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runResolve(resolve.Default(), exportPath, listingPath, &out, false); err != nil {
		t.Fatalf("runResolve: %v", err)
	}

	want := "0x004F00\tFoo::Bar\tCMP W8, #0x1A\n" +
		"0x004F04\tMusicSelect$$GetID\tMOV W0, #0x1A\n"
	if out.String() != want {
		t.Errorf("runResolve output = %q, want %q", out.String(), want)
	}
}

func TestRunAggregate(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "music.txt")
	second := filepath.Join(dir, "difficulty.txt")
	outPath := filepath.Join(dir, "patches.toml")
	if err := os.WriteFile(first, []byte("# music patches\n0xAA\tFoo::Bar\tMOV R0, R1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("0xBB\tBaz::Qux\tCMP W8, #0x1A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runAggregate(outPath, []string{first, second}); err != nil {
		t.Fatalf("runAggregate: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	want := `[[patches]]
# Foo::Bar
offset = 0xAA
instruction = "MOV R0, R1"

[[patches]]
# Baz::Qux
offset = 0xBB
instruction = "CMP W8, #0x1A"
`
	if string(got) != want {
		t.Errorf("aggregate output = %q, want %q", string(got), want)
	}
}

func TestRunAggregateMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("0xAA only-two-fields\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runAggregate(filepath.Join(dir, "out.toml"), []string{bad}); err == nil {
		t.Error("runAggregate should fail on a malformed record file")
	}
}
