// Package ir defines the IR builder interface the emitter (internal/emit)
// programs against. spec.md §6.3 deliberately treats the IR object model
// as an external collaborator and does not prescribe its implementation;
// this package is that seam. internal/ir/textual is this module's one
// concrete implementation, grounded on the original's LLVM-based codegen
// (original_source/include/codegen/CodeGen.h) but emitting a textual
// SSA-like form instead of binding to a real LLVM library, since no LLVM
// binding is reachable from this module's dependency pack (SPEC_FULL.md
// §6.3).
package ir

// Type is an opaque backend type handle (i32, double, i1, i8*, void,
// pointer-to-T, function-type, ...).
type Type interface {
	String() string
}

// Value is an opaque backend SSA value or constant handle.
type Value interface {
	Type() Type
	String() string
}

// BasicBlock is an opaque backend basic block handle within a Function.
type BasicBlock interface {
	Name() string
	HasTerminator() bool
}

// Function is an opaque backend function handle.
type Function interface {
	Name() string
	Param(i int) Value
	ReturnType() Type
}

// Builder is the emitter's entire codegen surface: instruction issuance,
// block management, and function/global declaration. One Builder is
// constructed per compilation run and is torn down with the emitter,
// per spec.md §9's note on the source's global mutable IR
// context/builder/module becoming process-scoped state bounded to the
// emitter's lifetime.
type Builder interface {
	// Types
	IntType() Type
	FloatType() Type
	DoubleType() Type
	BoolType() Type
	VoidType() Type
	StringType() Type // i8* in the reference backend
	FunctionType(ret Type, params []Type, variadic bool) Type

	// Constants
	ConstInt(v int64) Value
	ConstDouble(v float64) Value
	ConstFloat(v float32) Value
	ConstBool(v bool) Value
	ConstString(v string) Value // interns a global string constant, returns an i8* pointer value

	// Functions & blocks
	DeclareFunction(name string, fnType Type) Function
	DefineFunction(name string, fnType Type) Function
	AppendBlock(fn Function, name string) BasicBlock
	SetInsertPoint(b BasicBlock)
	CurrentBlock() BasicBlock

	// Memory
	Alloca(name string, t Type) Value
	Load(name string, addr Value, t Type) Value
	Store(addr, v Value)
	GEP(name string, base Value, elemType Type, index Value) Value

	// Arithmetic & comparisons. Integer ops are unsigned uniformly, per
	// SPEC_FULL.md §4.9 (preserved fidelity choice, not a bug).
	IAdd(name string, l, r Value) Value
	ISub(name string, l, r Value) Value
	IMul(name string, l, r Value) Value
	UDiv(name string, l, r Value) Value
	URem(name string, l, r Value) Value
	Shl(name string, l, r Value) Value
	AShr(name string, l, r Value) Value
	LShr(name string, l, r Value) Value
	And(name string, l, r Value) Value
	Or(name string, l, r Value) Value
	Xor(name string, l, r Value) Value
	Not(name string, v Value) Value
	Neg(name string, v Value) Value
	ICmpULT(name string, l, r Value) Value
	ICmpUGT(name string, l, r Value) Value
	ICmpULE(name string, l, r Value) Value
	ICmpUGE(name string, l, r Value) Value
	ICmpEQ(name string, l, r Value) Value
	ICmpNE(name string, l, r Value) Value

	FAdd(name string, l, r Value) Value
	FSub(name string, l, r Value) Value
	FMul(name string, l, r Value) Value
	FDiv(name string, l, r Value) Value
	FCmpOLT(name string, l, r Value) Value
	FCmpOGT(name string, l, r Value) Value
	FCmpOLE(name string, l, r Value) Value
	FCmpOGE(name string, l, r Value) Value
	FCmpOEQ(name string, l, r Value) Value
	FCmpONE(name string, l, r Value) Value

	// Control flow
	Br(target BasicBlock)
	CondBr(cond Value, then, els BasicBlock)
	Ret(v Value)
	RetVoid()

	// Calls
	Call(name string, fn Function, args []Value) Value

	// Verification & serialization
	VerifyFunction(fn Function) error
	Serialize() string
}

// Context is the top-level handle a Builder is created from; mirrors the
// original's static llvm::LLVMContext, scoped now to one compilation run
// (spec.md §9).
type Context interface {
	NewModule(name string) (Module, Builder)
}

// Module is the backend's top-level container, serialized to the ".ll"
// textual output file named by suffix replacement from the source path
// (spec.md §4.5 "Output").
type Module interface {
	Name() string
}
