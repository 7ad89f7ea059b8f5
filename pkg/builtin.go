package rox

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func defineBuiltins(b *LLVMIRBuilder) {
	defineBuiltinFunc(b, "printf", builtinPrintf)
}

type funcDefinition = func(mod *ir.Module) *ir.Func

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b.mod)
	f.SetName(name)
	b.builtins[name] = f
}

// builtinPrintf declares the C printf. It has no body, the linker provides it.
func builtinPrintf(mod *ir.Module) *ir.Func {
	printf := mod.NewFunc("", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	return printf
}

// cString defines a NUL terminated global and returns an i8* to its start.
func (b *LLVMIRBuilder) cString(s string) constant.Constant {
	if g, ok := b.strings[s]; ok {
		return g
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strings)), data)
	glob.Immutable = true

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(types.NewArray(uint64(len(s)+1), types.I8), glob, zero, zero)
	b.strings[s] = ptr

	return ptr
}

func (b *LLVMIRBuilder) print(format string, args ...value.Value) {
	b.printValue(b.cString(format), args...)
}

// printValue calls printf with a format computed at run time.
func (b *LLVMIRBuilder) printValue(format value.Value, args ...value.Value) {
	callArgs := append([]value.Value{format}, args...)
	b.block.NewCall(b.builtins["printf"], callArgs...)
}
