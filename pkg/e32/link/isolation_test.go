package link

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Build, the accessors and SerialMode take no driver or port, so the only
// way they could touch hardware is through an OS or port API. LoadOptions in
// yaml.go is the single file read of the package.
func TestNoHardwareAccess(t *testing.T) {
	forbidden := map[string]bool{
		"os": true, "os/exec": true, "io/ioutil": true, "net": true, "syscall": true, "unsafe": true,
	}
	allowedSerial := map[string]bool{
		"Mode": true, "NoParity": true, "OddParity": true, "EvenParity": true, "OneStopBit": true,
	}

	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	fset := token.NewFileSet()
	checked := 0
	for _, fn := range files {
		if strings.HasSuffix(fn, "_test.go") || fn == "yaml.go" {
			continue
		}
		f, err := parser.ParseFile(fset, fn, nil, parser.ImportsOnly)
		require.NoError(t, err, fn)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			require.False(t, forbidden[path], "%s imports %s", fn, path)
		}

		f, err = parser.ParseFile(fset, fn, nil, 0)
		require.NoError(t, err, fn)
		ast.Inspect(f, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == "serial" {
				require.True(t, allowedSerial[sel.Sel.Name], "%s uses serial.%s", fn, sel.Sel.Name)
			}
			return true
		})
		checked++
	}
	require.NotZero(t, checked)
}

func TestSerialModeIsACopy(t *testing.T) {
	cfg := MustBuild(DefaultOptions())
	mode := cfg.SerialMode()
	mode.BaudRate = 1
	require.Equal(t, 9600, cfg.SerialMode().BaudRate)
}
