package script

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// newSandbox creates a Lua state with only safe libraries opened.
func newSandbox(callStackSize int) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: callStackSize,
	})

	// base: print, type, pairs, ipairs, pcall, ...
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package are never opened.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// installPrint routes print to out, or to the logger when out is nil.
func installPrint(L *lua.LState, out io.Writer, logger *zap.Logger) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		line := strings.Join(parts, "\t")
		if out != nil {
			fmt.Fprintln(out, line)
		} else {
			logger.Info("script output", zap.String("line", line))
		}
		return 0
	}))
}
