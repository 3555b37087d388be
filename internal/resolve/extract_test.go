package resolve

import (
	"errors"
	"testing"
)

func TestExtractLabel(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "signature directly in third token",
			out: `public class Foo // TypeDefIndex: 4242
{
	// RVA: 0x1234 Offset: 0x1234 VA: 0x7101234
	public void Bar() { }
`,
			want: "Foo::Bar",
		},
		{
			name: "modifier shifts signature to fourth token",
			out: `public class Ticker // TypeDefIndex: 7
{
	// RVA: 0x2000 Offset: 0x2000 VA: 0x7102000
	public override void Tick() { }
`,
			want: "Ticker::Tick",
		},
		{
			name: "inheritance colon falls back to third token",
			out: `public class Baz : MonoBehaviour
{
	// RVA: 0x3000 Offset: 0x3000 VA: 0x7103000
	public int GetID() { }
`,
			want: "Baz::GetID",
		},
		{
			name: "static class keeps fourth token",
			out: `public static class Util // TypeDefIndex: 9
{
	// RVA: 0x4000 Offset: 0x4000 VA: 0x7104000
	public static string Format(int id) { }
`,
			want: "Util::Format",
		},
		{
			name: "last class declaration wins",
			out: `public class Outer : MonoBehaviour
{
	public class Inner : Object
	{
		// RVA: 0x5000 Offset: 0x5000 VA: 0x7105000
		public void Poke() { }
`,
			want: "Inner::Poke",
		},
		{
			name: "blank lines are dropped before extraction",
			out: `public class Foo : MonoBehaviour

	// RVA: 0x1234 Offset: 0x1234 VA: 0x7101234
	public void Bar() { }

`,
			want: "Foo::Bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractLabel(tt.out)
			if err != nil {
				t.Fatalf("extractLabel: %v", err)
			}
			if got != tt.want {
				t.Errorf("extractLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractLabelMalformed(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{
			name: "method line too short",
			out: `public class Foo : MonoBehaviour
x y
`,
		},
		{
			name: "class line too short",
			out: `weird class
	public void Bar() { }
`,
		},
		{
			name: "empty output",
			out:  "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extractLabel(tt.out); !errors.Is(err, ErrFormat) {
				t.Errorf("extractLabel(%q): err = %v, want ErrFormat", tt.out, err)
			}
		})
	}
}
