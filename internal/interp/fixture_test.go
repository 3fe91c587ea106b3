package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/go-logr/logr"

	"github.com/brewlang/brew/internal/interp"
	"github.com/brewlang/brew/internal/lexer"
	"github.com/brewlang/brew/internal/parser"
)

// TestBrewFixtures runs a small set of representative Brew programs through
// the full lex/parse/execute pipeline and snapshots their stdout, the way
// go-dws's fixture_test.go snapshots DWScript test-suite output.
func TestBrewFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{
			name: "recursive_factorial",
			source: `
func fact(n) {
    if (n <= 1) {
        return 1;
    }
    return n * fact(n - 1);
}

func main() {
    print(fact(6));
}
`,
		},
		{
			name: "while_loop_accumulator",
			source: `
func main() {
    total = 0;
    i = 1;
    while (i <= 5) {
        total = total + i;
        i = i + 1;
    }
    print(total);
}
`,
		},
		{
			name: "nested_objects",
			source: `
func main() {
    address = @;
    address.city = "Springfield";

    person = @;
    person.name = "Homer";
    person.address = address;

    print(person.name, " lives in ", person.address.city);
}
`,
		},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			l := lexer.New(fx.source)
			p := parser.New(l)
			program := p.ParseProgram()
			if len(p.Errors()) > 0 {
				t.Fatalf("unexpected parse errors: %v", p.Errors())
			}

			var out bytes.Buffer
			it := interp.New(&out, strings.NewReader(""), logr.Discard())
			if err := it.Run(program, fx.source); err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}

			snaps.MatchSnapshot(t, out.String())
		})
	}
}
