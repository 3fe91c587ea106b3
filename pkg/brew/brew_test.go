package brew_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlang/brew/pkg/brew"
)

func TestRunSimpleProgram(t *testing.T) {
	var out bytes.Buffer
	engine := brew.New(brew.Options{Output: &out})

	err := engine.Run(`
func main() {
    print("hello, brew");
}
`)
	require.NoError(t, err)
	assert.Equal(t, "hello, brew\n", out.String())
}

func TestRunSyntaxErrorIsReported(t *testing.T) {
	var out bytes.Buffer
	engine := brew.New(brew.Options{Output: &out})

	err := engine.Run(`func main() { return 1; `)
	require.Error(t, err)

	var progErr *brew.ProgramError
	require.ErrorAs(t, err, &progErr)
	assert.NotEmpty(t, progErr.Errors)
}

func TestRunRuntimeErrorIsReported(t *testing.T) {
	var out bytes.Buffer
	engine := brew.New(brew.Options{Output: &out})

	err := engine.Run(`
func main() {
    print(undefinedVar);
}
`)
	require.Error(t, err)

	var progErr *brew.ProgramError
	require.ErrorAs(t, err, &progErr)
	require.Len(t, progErr.Errors, 1)
	assert.Equal(t, "NAME_ERROR", string(progErr.Errors[0].Kind))
}
