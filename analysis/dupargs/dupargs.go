// Package dupargs defines an Analyzer that reports named-argument calls
// passing the same marker more than once.
//
// Only arguments written as m.Is(v) directly in the call are checked; a
// spread slice (args...) is left to run-time validation.
package dupargs

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const doc = `report duplicate named arguments

The dupargs analyzer reports calls to namedargs.Validate, Bind, TryBind,
Func.Call and Func.Check that pass m.Is(...) for the same marker m more
than once. Such calls are always rejected at run time.`

// PkgPath is the import path whose calls are checked.
var PkgPath = "github.com/reoring/namedargs"

var Analyzer = &analysis.Analyzer{
	Name:     "dupargs",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	checkedFuncs   = map[string]bool{"Validate": true, "Bind": true, "TryBind": true}
	checkedMethods = map[string]bool{"Call": true, "Check": true}
)

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if call.Ellipsis.IsValid() || !isChecked(pass.TypesInfo, call) {
			return
		}
		seen := make(map[types.Object]bool)
		for _, arg := range call.Args {
			obj, recv := markerOf(pass.TypesInfo, arg)
			if obj == nil {
				continue
			}
			if seen[obj] {
				pass.Reportf(arg.Pos(), "marker %s is passed more than once", recv)
				continue
			}
			seen[obj] = true
		}
	})
	return nil, nil
}

func isChecked(info *types.Info, call *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != PkgPath {
		return false
	}
	recv := fn.Type().(*types.Signature).Recv()
	if recv == nil {
		return checkedFuncs[fn.Name()]
	}
	return checkedMethods[fn.Name()] && recvName(recv.Type()) == "Func"
}

// markerOf returns the variable behind an m.Is(v) argument and its source
// spelling.
func markerOf(info *types.Info, arg ast.Expr) (types.Object, string) {
	call, ok := ast.Unparen(arg).(*ast.CallExpr)
	if !ok {
		return nil, ""
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Is" {
		return nil, ""
	}
	fn, ok := info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != PkgPath {
		return nil, ""
	}
	recv := fn.Type().(*types.Signature).Recv()
	if recv == nil || recvName(recv.Type()) != "Marker" {
		return nil, ""
	}
	switch x := ast.Unparen(sel.X).(type) {
	case *ast.Ident:
		if v, ok := info.Uses[x].(*types.Var); ok {
			return v, x.Name
		}
	case *ast.SelectorExpr:
		if v, ok := info.Uses[x.Sel].(*types.Var); ok && isPackageLevel(v) {
			return v, types.ExprString(x)
		}
	}
	return nil, ""
}

// Struct fields are not tracked: two selectors with the same field may be
// different markers.
func isPackageLevel(v *types.Var) bool {
	return !v.IsField() && v.Parent() == v.Pkg().Scope()
}

func recvName(t types.Type) string {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if n, ok := t.(*types.Named); ok {
		return n.Origin().Obj().Name()
	}
	return ""
}
